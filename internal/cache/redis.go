package cache

import (
	"context"
	"errors"
	"io"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"glpidashboard/pkg/logger"
)

// RedisClient is the subset of the redis repository the store uses.
type RedisClient interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// Redis is a Store shared by every replica of the service. Expiry is left to
// Redis (SET ... EX).
type Redis struct {
	client RedisClient
	log    *logger.Logger
}

// NewRedis creates a Redis store.
func NewRedis(client RedisClient, log *logger.Logger) *Redis {
	if log == nil {
		log = logger.NewLogger(logger.Config{Service: "cache", Output: io.Discard})
	}
	return &Redis{client: client, log: log}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.log.Warn("redis cache read failed, treating as miss", map[string]interface{}{"key": key, "error": err.Error()})
		}
		return nil, false
	}
	return value, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn("redis cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
}
