package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/lol-match-history/internal/platform/resilience"
)

// loadTimeout caps a shared load, which no single caller can cancel.
const loadTimeout = 30 * time.Second

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Store is an in-process TTL cache. Concurrent misses for one key share a
// single load.
type Store[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	ttl     time.Duration
	now     func() time.Time
	flight  resilience.Group[T]
}

// NewStore returns a store whose entries live for ttl. A ttl <= 0 keeps
// entries until they are deleted.
func NewStore[T any](ttl time.Duration) *Store[T] {
	return &Store[T]{
		entries: make(map[string]entry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store[T]) Get(_ context.Context, key string) (T, bool) {
	var zero T
	if key == "" {
		return zero, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if s.expired(e) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && s.expired(current) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return zero, false
	}
	return e.value, true
}

func (s *Store[T]) Set(_ context.Context, key string, value T) {
	if key == "" {
		return
	}

	e := entry[T]{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *Store[T]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	s.flight.Forget(key)
}

// GetOrLoad returns the cached value for key or stores what loader returns.
// Loader errors are not cached. A caller whose ctx ends stops waiting
// without failing the others sharing the load.
func (s *Store[T]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, _, err := s.flight.DoContext(ctx, key, func(ctx context.Context) (T, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		ctx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		loaded, err := loader(ctx)
		if err != nil {
			return zero, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return value, nil
}

func (s *Store[T]) expired(e entry[T]) bool {
	return s.ttl > 0 && !e.expiresAt.After(s.now())
}
