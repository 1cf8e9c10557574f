package lock

import (
	"context"
	"sync"
)

// MemoryLocker is a process-local Locker for single-instance deployments.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[Key]uint64
	seq  uint64
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{held: make(map[Key]uint64)}
}

func (l *MemoryLocker) TryAcquire(_ context.Context, key Key) (Lease, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[key]; ok {
		return nil, false, nil
	}
	l.seq++
	l.held[key] = l.seq
	return &memoryLease{locker: l, key: key, token: l.seq}, true, nil
}

func (l *MemoryLocker) Held(_ context.Context, key Key) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.held[key]
	return ok, nil
}

type memoryLease struct {
	locker *MemoryLocker
	key    Key
	token  uint64
}

func (m *memoryLease) Release(context.Context) error {
	m.locker.mu.Lock()
	defer m.locker.mu.Unlock()
	if m.locker.held[m.key] == m.token {
		delete(m.locker.held, m.key)
	}
	return nil
}
