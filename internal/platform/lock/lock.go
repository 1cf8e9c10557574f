// Package lock provides named try-locks keyed by (namespace, resource id).
// Callers never block on a held lock: TryAcquire reports false and the
// caller decides whether to skip or poll Held.
package lock

import (
	"context"
	"fmt"
	"math"
)

type Key struct {
	Namespace int32
	ID        int64
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.Namespace, k.ID)
}

// Lease is a held lock. Release is safe to call more than once.
type Lease interface {
	Release(ctx context.Context) error
}

type Locker interface {
	// TryAcquire returns (nil, false, nil) when another holder owns key.
	TryAcquire(ctx context.Context, key Key) (Lease, bool, error)
	Held(ctx context.Context, key Key) (bool, error)
}

// foldID maps a resource id onto the 32-bit advisory lock object id. Ids
// outside int32 range are folded, so distinct large ids may share a lock.
func foldID(id int64) int32 {
	if id >= math.MinInt32 && id <= math.MaxInt32 {
		return int32(id)
	}
	return int32(uint32(id) ^ uint32(uint64(id)>>32))
}
