// Package cache is a thin Redis layer for short-lived upstream response
// caching. All methods are safe on a nil receiver, so the API keeps working
// when Redis is unavailable.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/richtv/market-content-api/pkg/metrics"
)

type ResponseCache struct {
	client *redis.Client
}

func New(redisURL string) (*ResponseCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &ResponseCache{client: client}, nil
}

// Key builds a cache key from the domain and its lookup parts.
func Key(domain string, parts ...string) string {
	key := "content:" + domain
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// Get loads a cached value into dest and reports whether it was present.
func (c *ResponseCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		metrics.RecordCacheMiss("redis")
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		metrics.RecordCacheMiss("redis")
		return false
	}

	metrics.RecordCacheHit("redis")
	return true
}

// Set stores value under key for ttl. Failures are swallowed; the cache is
// an optimization, never a dependency.
func (c *ResponseCache) Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, ttl)
}

func (c *ResponseCache) HealthCheck(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("cache not configured")
	}
	return c.client.Ping(ctx).Err()
}

func (c *ResponseCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
