// Package cache keeps rendered listing boards in Redis so the grouped venue
// and artist listings don't hit SQLite on every page view. Entries are
// invalidated on every write and expire on a short TTL regardless.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type Cache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *log.Logger
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		Client: client,
		TTL:    ttl,
		Logger: log.Default(),
	}
}

// Get loads a cached board into dest. A miss, an unreachable Redis or a
// stale payload all report false; the caller falls through to storage.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	val, err := c.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.Logger.Printf("REDIS: get %s failed: %v", key, err)
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		c.Logger.Printf("REDIS: cached payload for %s unreadable, dropping: %v", key, err)
		c.Client.Del(ctx, key)
		return false
	}
	return true
}

// Set stores a board under the configured TTL. Failures are logged and
// swallowed; the cache is never load-bearing.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	b, err := json.Marshal(value)
	if err != nil {
		c.Logger.Printf("REDIS: marshal for %s failed: %v", key, err)
		return
	}
	if err := c.Client.Set(ctx, key, b, c.TTL).Err(); err != nil {
		c.Logger.Printf("REDIS: set %s failed: %v", key, err)
	}
}

// Invalidate drops the given boards after a write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := c.Client.Del(ctx, keys...).Err(); err != nil {
		c.Logger.Printf("REDIS: invalidate %v failed: %v", keys, err)
	}
}

// Noop satisfies the service cache interfaces when Redis is disabled.
type Noop struct{}

func (Noop) Get(ctx context.Context, key string, dest interface{}) bool { return false }
func (Noop) Set(ctx context.Context, key string, value interface{})     {}
func (Noop) Invalidate(ctx context.Context, keys ...string)             {}
