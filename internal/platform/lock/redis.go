package lock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisTTL = 10 * time.Minute

// Deletes the key only while it still carries the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds locks as SET NX PX keys. The TTL bounds how long a
// crashed holder can block others; it must exceed the longest refresh.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, prefix string) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultRedisTTL
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "lock"
	}
	return &RedisLocker{client: client, ttl: ttl, prefix: prefix}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, key Key) (Lease, bool, error) {
	token := uuid.NewString()
	name := l.keyName(key)

	ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis set nx key=%s: %w", name, err)
	}
	if !ok {
		return nil, false, nil
	}
	return &redisLease{client: l.client, name: name, token: token}, true, nil
}

func (l *RedisLocker) Held(ctx context.Context, key Key) (bool, error) {
	n, err := l.client.Exists(ctx, l.keyName(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists key=%s: %w", l.keyName(key), err)
	}
	return n > 0, nil
}

func (l *RedisLocker) keyName(key Key) string {
	return l.prefix + ":" + key.String()
}

type redisLease struct {
	client *redis.Client
	name   string
	token  string

	once sync.Once
	err  error
}

func (r *redisLease) Release(ctx context.Context) error {
	r.once.Do(func() {
		if err := releaseScript.Run(ctx, r.client, []string{r.name}, r.token).Err(); err != nil {
			r.err = fmt.Errorf("redis release key=%s: %w", r.name, err)
		}
	})
	return r.err
}
