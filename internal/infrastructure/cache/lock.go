package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrLockTimeout is returned when a lock stays held by someone else until ctx
// or the wait budget runs out.
var ErrLockTimeout = errors.New("lock wait timed out")

// ReleaseFunc gives a lock back. Safe to call more than once.
type ReleaseFunc func()

// Locker serializes short critical sections across API instances.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error)
}

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client    redis.UniversalClient
	retryWait time.Duration
}

func NewRedisLocker(client redis.UniversalClient) *RedisLocker {
	return &RedisLocker{
		client:    client,
		retryWait: 25 * time.Millisecond,
	}
}

// Acquire takes key with SET NX PX. While the key is held it polls until the
// lock frees up, ctx is done, or ttl elapses (the holder's lease would have
// expired by then). When Redis itself is unreachable the lock degrades to a
// no-op so callers fall back on their own conflict handling.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, error) {
	token := uuid.NewString()
	deadline := time.Now().Add(ttl)

	for {
		ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warn().Err(err).Str("key", key).Msg("redis lock unavailable, continuing without it")
			return func() {}, nil
		}
		if ok {
			return l.releaser(key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retryWait):
		}
	}
}

func (l *RedisLocker) releaser(key, token string) ReleaseFunc {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		// The caller's ctx may already be cancelled; release on a fresh one.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to release redis lock")
		}
	}
}

// NoopLocker never blocks. Used when Redis is not configured.
type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string, time.Duration) (ReleaseFunc, error) {
	return func() {}, nil
}
