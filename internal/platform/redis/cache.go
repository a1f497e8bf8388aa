package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rmsato/todoapi/internal/cache"
)

// Cache implements the cache.Cache interface on top of a Redis client.
type Cache struct {
	client *redis.Client
}

// NewCache creates a Redis-backed cache using the given client.
// The client's lifecycle is managed by the caller.
func NewCache(client *redis.Client) *Cache {
	if client == nil {
		panic("client cannot be nil")
	}
	return &Cache{client: client}
}

// Ensure Cache implements the cache.Cache interface
var _ cache.Cache = (*Cache)(nil)

// Get implements cache.Cache.Get
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Set implements cache.Cache.Set
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Delete implements cache.Cache.Delete
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
