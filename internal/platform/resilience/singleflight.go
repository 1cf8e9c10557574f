package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Group collapses concurrent calls sharing a key into one execution and
// hands every caller the same typed result.
type Group[T any] struct {
	g singleflight.Group
}

// Result is what DoChan delivers.
type Result[T any] struct {
	Val    T
	Err    error
	Shared bool
}

// Do runs fn once per in-flight key. shared reports whether the result was
// produced by another caller's execution.
func (g *Group[T]) Do(key string, fn func() (T, error)) (T, bool, error) {
	out, err, shared := g.g.Do(key, func() (any, error) {
		return fn()
	})
	value, _ := out.(T)
	return value, shared, err
}

// DoChan is Do without blocking. The channel receives exactly one Result.
func (g *Group[T]) DoChan(key string, fn func() (T, error)) <-chan Result[T] {
	src := g.g.DoChan(key, func() (any, error) {
		return fn()
	})
	out := make(chan Result[T], 1)
	go func() {
		r := <-src
		value, _ := r.Val.(T)
		out <- Result[T]{Val: value, Err: r.Err, Shared: r.Shared}
	}()
	return out
}

// DoContext runs fn once per in-flight key on a context that keeps ctx's
// values but not its cancellation, so one caller giving up never fails the
// others joined on the key. Each caller stops waiting when its own ctx is
// done. fn must bound its own run time.
func (g *Group[T]) DoContext(ctx context.Context, key string, fn func(context.Context) (T, error)) (T, bool, error) {
	detached := context.WithoutCancel(ctx)
	ch := g.DoChan(key, func() (T, error) {
		return fn(detached)
	})

	select {
	case r := <-ch:
		return r.Val, r.Shared, r.Err
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}

// Forget drops key so the next Do starts a fresh execution.
func (g *Group[T]) Forget(key string) {
	g.g.Forget(key)
}
