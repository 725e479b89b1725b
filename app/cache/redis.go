package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

const itemsKey = "news:items"

var _ ItemCache = (*RedisCache)(nil)

// RedisCache stores the published collection in Redis, JSON-encoded under a
// fixed key. TTL expiry is enforced by Redis itself.
type RedisCache struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisCache(addr string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{
		client: client,
		ctx:    ctx,
	}, nil
}

func (c *RedisCache) GetItems() ([]feed.Item, bool, error) {
	data, err := c.client.Get(c.ctx, itemsKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached items: %w", err)
	}

	var items []feed.Item
	if err := json.Unmarshal(data, &items); err != nil {
		// stale or corrupt payload, treat as a miss and drop it
		c.client.Del(c.ctx, itemsKey)
		return nil, false, nil
	}

	return items, true, nil
}

func (c *RedisCache) SetItems(items []feed.Item, ttl time.Duration) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal items: %w", err)
	}

	if err := c.client.Set(c.ctx, itemsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached items: %w", err)
	}

	return nil
}

func (c *RedisCache) TTL() (time.Duration, error) {
	ttl, err := c.client.TTL(c.ctx, itemsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get TTL: %w", err)
	}
	return ttl, nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Health() map[string]interface{} {
	health := map[string]interface{}{
		"status": "healthy",
		"type":   "redis",
	}

	if err := c.client.Ping(c.ctx).Err(); err != nil {
		health["status"] = "unhealthy"
		health["error"] = err.Error()
	}

	return health
}
