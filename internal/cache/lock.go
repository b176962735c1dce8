package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrLockHeld is returned when another holder owns the lock
var ErrLockHeld = errors.New("lock is held by another request")

// Locker serializes work on a key across server instances.
type Locker interface {
	// Acquire takes the lock for ttl. The returned release func is safe to call once.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
	prefix string
}

// NewRedisLocker implements Locker with SET NX PX.
func NewRedisLocker(client *redis.Client, prefix string) Locker {
	return &redisLocker{client: client, prefix: prefix}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	fullKey := l.prefix + ":" + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLockHeld
	}

	return func() {
		// Release with a fresh context: the request may already be cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, l.client, []string{fullKey}, token).Err()
	}, nil
}

// noopLocker always grants the lock. The database unique index still guards races.
type noopLocker struct{}

func NewNoopLocker() Locker {
	return noopLocker{}
}

func (noopLocker) Acquire(context.Context, string, time.Duration) (func(), error) {
	return func() {}, nil
}
