package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisLocker(client, ttl, "test"), server
}

func TestRedisLocker_TryAcquire(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locker, server := newRedisLocker(t, time.Minute)
	key := Key{Namespace: 1001, ID: 9}

	lease, ok, err := locker.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, server.Exists("test:1001:9"))

	_, ok, err = locker.TryAcquire(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "second acquire must fail while held")

	held, err := locker.Held(ctx, key)
	require.NoError(t, err)
	assert.True(t, held)

	require.NoError(t, lease.Release(ctx))
	require.NoError(t, lease.Release(ctx))

	held, err = locker.Held(ctx, key)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestRedisLocker_ExpiredLeaseDoesNotReleaseNewHolder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	locker, server := newRedisLocker(t, time.Second)
	key := Key{Namespace: 1001, ID: 10}

	stale, ok, err := locker.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	server.FastForward(2 * time.Second)

	fresh, ok, err := locker.TryAcquire(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, stale.Release(ctx))
	held, err := locker.Held(ctx, key)
	require.NoError(t, err)
	assert.True(t, held)

	require.NoError(t, fresh.Release(ctx))
}
