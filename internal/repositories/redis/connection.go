package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Options configures the connection. Addr empty means the compose service
// "redis:6379" with "localhost:6379" as fallback.
type Options struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// RedisInternal is a struct that contains a Redis client and the key prefix
// every key of this service lives under
type RedisInternal struct {
	Redis  *redis.Client
	prefix string
}

// NewRedisInternal connects and pings Redis
func NewRedisInternal(opts Options) (*RedisInternal, error) {
	addrs := []string{opts.Addr}
	if opts.Addr == "" {
		addrs = []string{"redis:6379", "localhost:6379"}
	}

	var lastErr error
	for _, addr := range addrs {
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: opts.Password,
			DB:       opts.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		_, err := rdb.Ping(ctx).Result()
		cancel()
		if err == nil {
			return &RedisInternal{Redis: rdb, prefix: opts.KeyPrefix}, nil
		}

		lastErr = err
		_ = rdb.Close()
	}

	return nil, fmt.Errorf("connecting to Redis: %w", lastErr)
}

// Close closes the underlying client
func (r *RedisInternal) Close() error {
	return r.Redis.Close()
}
