package store

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis wraps redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to redis with short timeouts.
func NewRedis(addr string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  1 * time.Second,
		WriteTimeout: 1 * time.Second,
	})
	return &Redis{Client: client}
}

// Healthy verifies redis connectivity.
func (r *Redis) Healthy(ctx context.Context) bool {
	if r == nil || r.Client == nil {
		return false
	}
	return r.Client.Ping(ctx).Err() == nil
}

// Close releases the client.
func (r *Redis) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

const cacheKeyPrefix = "idcard:cache:"

// Cache is a best-effort JSON payload cache for the list endpoints, keyed by
// route path. A Cache built without redis is a no-op, so handlers never have
// to branch on whether caching is configured. Cache failures never fail a
// request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds a cache over r. r may be nil (caching disabled).
func NewCache(r *Redis, ttl time.Duration) *Cache {
	c := &Cache{ttl: ttl}
	if r != nil {
		c.client = r.Client
	}
	return c
}

// Get returns the cached payload for path, if any.
func (c *Cache) Get(ctx context.Context, path string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, cacheKeyPrefix+path).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", path, err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload for path with the configured TTL.
func (c *Cache) Set(ctx context.Context, path string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+path, payload, c.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", path, err)
	}
}

// Invalidate drops cached payloads for the given paths.
func (c *Cache) Invalidate(ctx context.Context, paths ...string) {
	if c == nil || c.client == nil || len(paths) == 0 {
		return
	}
	keys := make([]string, len(paths))
	for i, p := range paths {
		keys[i] = cacheKeyPrefix + p
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("cache invalidate: %v", err)
	}
}
