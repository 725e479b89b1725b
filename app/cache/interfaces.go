package cache

import (
	"time"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

// ItemCache holds the most recently published item collection. The
// collection is replaced wholesale by each successful aggregation cycle and
// expires on its own after the TTL when no cycle runs.
type ItemCache interface {
	// GetItems returns the published collection, or ok=false on a miss.
	GetItems() ([]feed.Item, bool, error)
	// SetItems replaces the published collection with the given TTL.
	SetItems(items []feed.Item, ttl time.Duration) error
	// TTL reports the remaining lifetime of the published collection.
	TTL() (time.Duration, error)
	// Health reports the cache backend's status for the health endpoint.
	Health() map[string]interface{}
	Close() error
}
