package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var errRedisNotInitialized = errors.New("redis client is not initialized")

// RedisClient owns the connection backing slug locks. The task queue uses
// its own asynq connection built from the same settings.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(addr, password string, db int) *RedisClient {
	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	return &RedisClient{Client: redis.NewClient(opts)}
}

// Connect pings once. A failure is reported, not retried; callers decide
// whether Redis is required.
func (r *RedisClient) Connect(ctx context.Context) error {
	if err := r.ping(ctx); err != nil {
		return err
	}
	log.Info().Str("addr", r.Client.Options().Addr).Msg("redis connected")
	return nil
}

// HealthCheck pings with a 2s ceiling.
func (r *RedisClient) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.ping(ctx)
}

func (r *RedisClient) ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errRedisNotInitialized
	}
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisClient) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
