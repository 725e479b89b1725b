package database

import (
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

// ItemRepository is the narrow store contract consumed by the aggregation
// cycle: a keyed lookup and an upsert over the (title, link) natural key.
// All mutations of one cycle run inside a single transaction so a failed
// cycle commits nothing.
type ItemRepository interface {
	Begin() (ItemTx, error)
	GetRecent(limit int) ([]feed.Item, error)
	GetItemCount() (int, error)
}

// ItemTx scopes repository operations to one cycle's transaction.
type ItemTx interface {
	// GetByTitleLink returns the stored item with the given natural key,
	// or nil when no such item exists.
	GetByTitleLink(title, link string) (*feed.Item, error)
	// Upsert inserts the item or refreshes the existing row with the same
	// (title, link), returning the item with its persisted identifier.
	Upsert(item feed.Item) (feed.Item, error)
	Commit() error
	Rollback() error
}
