package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key returns key under the configured prefix
func (r *RedisInternal) Key(key string) string {
	return r.prefix + key
}

// Get is a function that returns the value of a key
func (r *RedisInternal) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.Redis.Get(ctx, r.Key(key))
}

// Set is a function that sets a key value pair
func (r *RedisInternal) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	return r.Redis.Set(ctx, r.Key(key), value, expiration)
}

// Expire is a function that sets a key expiration time
func (r *RedisInternal) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	return r.Redis.Expire(ctx, r.Key(key), expiration)
}

// TTL is a function that returns the time to live of a key
func (r *RedisInternal) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return r.Redis.TTL(ctx, r.Key(key))
}

// Incr is a function that increments a key
func (r *RedisInternal) Incr(ctx context.Context, key string) *redis.IntCmd {
	return r.Redis.Incr(ctx, r.Key(key))
}

// Ping checks the connection, used by the healthcheck
func (r *RedisInternal) Ping(ctx context.Context) error {
	return r.Redis.Ping(ctx).Err()
}
