package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentMisses(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("db down")
		}
		return 7, nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err == nil {
		t.Fatalf("expected first load to fail")
	}
	v, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}
	if v != 7 || calls.Load() != 2 {
		t.Fatalf("expected a fresh load after an error, got value=%d calls=%d", v, calls.Load())
	}
}

func TestStore_EntriesExpire(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore[string](time.Second)
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "k", "v")
	if got, ok := store.Get(context.Background(), "k"); !ok || got != "v" {
		t.Fatalf("expected cached value, got %q ok=%v", got, ok)
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	store.Set(context.Background(), "k", "v")
	store.Delete(context.Background(), "k")
	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("expected entry to be deleted")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := store.GetOrLoad(firstCtx, "k", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			if err := ctx.Err(); err != nil {
				return "", err
			}
			return "value", nil
		})
		firstErr <- err
	}()

	<-started
	cancelFirst()
	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled for the cancelled caller, got %v", err)
	}
	close(release)

	v, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", errors.New("second load")
	})
	if err != nil || v != "value" {
		t.Fatalf("expected the shared load to finish and be cached, got %q err=%v", v, err)
	}
}
