package cache

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"golang.org/x/sync/singleflight"

	"glpidashboard/pkg/logger"
)

// Options configures a Cache.
type Options struct {
	TTL time.Duration
	// SingleFlight coalesces concurrent misses on the same key into one
	// computation. Off means two simultaneous misses both compute.
	SingleFlight bool
	// ComputeTimeout bounds a coalesced computation, which outlives the
	// caller that started it. Zero means 30s.
	ComputeTimeout time.Duration
}

// Cache wraps a Store with a TTL and JSON encoding.
type Cache struct {
	store          Store
	ttl            time.Duration
	computeTimeout time.Duration
	group          *singleflight.Group
	log            *logger.Logger
}

// New creates a Cache over store.
func New(store Store, opts Options, log *logger.Logger) *Cache {
	if opts.TTL <= 0 {
		opts.TTL = 300 * time.Second
	}
	if opts.ComputeTimeout <= 0 {
		opts.ComputeTimeout = 30 * time.Second
	}
	if log == nil {
		log = logger.NewLogger(logger.Config{Service: "cache", Output: io.Discard})
	}
	c := &Cache{store: store, ttl: opts.TTL, computeTimeout: opts.ComputeTimeout, log: log}
	if opts.SingleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// TTL returns the entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Store returns the backing store.
func (c *Cache) Store() Store {
	return c.store
}

// Fetch returns the cached value for key or runs compute and stores its
// result. Failed computations are never stored. The bool reports a hit.
func Fetch[T any](ctx context.Context, c *Cache, key string, compute func(context.Context) (T, error)) (T, bool, error) {
	var zero T

	if raw, ok := c.store.Get(ctx, key); ok {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			c.log.Debug("cache hit", map[string]interface{}{"key": key})
			return v, true, nil
		}
		c.log.Warn("cache entry could not be decoded, recomputing", map[string]interface{}{"key": key})
	}
	c.log.Debug("cache miss", map[string]interface{}{"key": key})

	load := func(ctx context.Context) ([]byte, error) {
		v, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		c.store.Set(ctx, key, raw, c.ttl)
		c.log.Info("cache set", map[string]interface{}{"key": key, "ttl_sec": int(c.ttl.Seconds())})
		return raw, nil
	}

	var raw []byte
	if c.group == nil {
		b, err := load(ctx)
		if err != nil {
			return zero, false, err
		}
		raw = b
	} else {
		// a carga compartilhada não morre com o contexto de quem a iniciou
		ch := c.group.DoChan(key, func() (interface{}, error) {
			shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.computeTimeout)
			defer cancel()
			return load(shared)
		})
		select {
		case <-ctx.Done():
			return zero, false, ctx.Err()
		case res := <-ch:
			if res.Err != nil {
				return zero, false, res.Err
			}
			raw = res.Val.([]byte)
		}
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, err
	}
	return v, false, nil
}
