package cache

import (
	"sync"
	"time"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

var _ ItemCache = (*MemoryCache)(nil)

// MemoryCache is a process-local ItemCache used when no Redis address is
// configured, and by tests. Expiry is checked lazily on read.
type MemoryCache struct {
	mu        sync.RWMutex
	items     []feed.Item
	populated bool
	expiresAt time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (c *MemoryCache) GetItems() ([]feed.Item, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated || time.Now().After(c.expiresAt) {
		return nil, false, nil
	}

	items := make([]feed.Item, len(c.items))
	copy(items, c.items)
	return items, true, nil
}

func (c *MemoryCache) SetItems(items []feed.Item, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make([]feed.Item, len(items))
	copy(c.items, items)
	c.populated = true
	c.expiresAt = time.Now().Add(ttl)

	return nil
}

func (c *MemoryCache) TTL() (time.Duration, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.populated {
		return 0, nil
	}

	remaining := time.Until(c.expiresAt)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

func (c *MemoryCache) Health() map[string]interface{} {
	return map[string]interface{}{
		"status": "healthy",
		"type":   "memory",
	}
}

func (c *MemoryCache) Close() error {
	return nil
}
