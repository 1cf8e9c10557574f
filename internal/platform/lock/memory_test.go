package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoryLocker_MutualExclusion(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	key := Key{Namespace: 1001, ID: 7}

	var acquired atomic.Int32
	var wg sync.WaitGroup
	leases := make(chan Lease, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lease, ok, err := locker.TryAcquire(context.Background(), key)
			if err != nil {
				t.Errorf("try acquire: %v", err)
				return
			}
			if ok {
				acquired.Add(1)
				leases <- lease
			}
		}()
	}
	wg.Wait()
	close(leases)

	if got := acquired.Load(); got != 1 {
		t.Fatalf("expected exactly one holder, got %d", got)
	}

	lease := <-leases
	if held, _ := locker.Held(context.Background(), key); !held {
		t.Fatalf("expected key to be held")
	}
	if err := lease.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if held, _ := locker.Held(context.Background(), key); held {
		t.Fatalf("expected key to be free after release")
	}
}

func TestMemoryLocker_StaleReleaseKeepsNewHolder(t *testing.T) {
	t.Parallel()

	locker := NewMemoryLocker()
	key := Key{Namespace: 1, ID: 2}

	first, _, _ := locker.TryAcquire(context.Background(), key)
	_ = first.Release(context.Background())

	second, ok, _ := locker.TryAcquire(context.Background(), key)
	if !ok {
		t.Fatalf("expected re-acquire after release")
	}
	_ = first.Release(context.Background())
	if held, _ := locker.Held(context.Background(), key); !held {
		t.Fatalf("stale release must not free the new holder")
	}
	_ = second.Release(context.Background())
}

func TestFoldID(t *testing.T) {
	t.Parallel()

	if got := foldID(42); got != 42 {
		t.Fatalf("small ids must pass through, got %d", got)
	}
	if got := foldID(-5); got != -5 {
		t.Fatalf("negative in-range ids must pass through, got %d", got)
	}
	big := int64(1)<<40 | 3
	if got := foldID(big); got != int32(3^(1<<8)) {
		t.Fatalf("unexpected fold for %d: %d", big, got)
	}
}
