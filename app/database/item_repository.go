package database

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

var _ ItemRepository = (*PostgresItemRepository)(nil)

// PostgresItemRepository persists normalized items keyed by (title, link).
type PostgresItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *PostgresItemRepository {
	return &PostgresItemRepository{db: db}
}

func (r *PostgresItemRepository) Begin() (ItemTx, error) {
	tx, err := r.db.DB.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &itemTx{tx: tx}, nil
}

func (r *PostgresItemRepository) GetRecent(limit int) ([]feed.Item, error) {
	rows, err := r.db.Query(`
		SELECT id, title, link, published_at, image_url, channel_title,
		       is_self_feed, categories
		FROM feed_items
		ORDER BY published_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent items: %w", err)
	}
	defer rows.Close()

	var items []feed.Item
	for rows.Next() {
		var item feed.Item
		err := rows.Scan(&item.ID, &item.Title, &item.Link, &item.PublishedAt,
			&item.ImageURL, &item.ChannelTitle, &item.IsSelfFeed,
			pq.Array(&item.Categories))
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row: %w", err)
		}
		item.PublishedAt = item.PublishedAt.UTC()
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows: %w", err)
	}

	return items, nil
}

func (r *PostgresItemRepository) GetItemCount() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM feed_items").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get item count: %w", err)
	}
	return count, nil
}

type itemTx struct {
	tx *sql.Tx
}

func (t *itemTx) GetByTitleLink(title, link string) (*feed.Item, error) {
	var item feed.Item
	err := t.tx.QueryRow(`
		SELECT id, title, link, published_at, image_url, channel_title,
		       is_self_feed, categories
		FROM feed_items
		WHERE title = $1 AND link = $2
	`, title, link).Scan(&item.ID, &item.Title, &item.Link, &item.PublishedAt,
		&item.ImageURL, &item.ChannelTitle, &item.IsSelfFeed,
		pq.Array(&item.Categories))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up item by title and link: %w", err)
	}

	item.PublishedAt = item.PublishedAt.UTC()
	return &item, nil
}

func (t *itemTx) Upsert(item feed.Item) (feed.Item, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	var id string
	err := t.tx.QueryRow(`
		INSERT INTO feed_items (
			id, title, link, published_at, image_url, channel_title,
			is_self_feed, categories, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (title, link) DO UPDATE SET
			published_at = EXCLUDED.published_at,
			image_url = EXCLUDED.image_url,
			channel_title = EXCLUDED.channel_title,
			is_self_feed = EXCLUDED.is_self_feed,
			categories = EXCLUDED.categories,
			updated_at = NOW()
		RETURNING id
	`, item.ID, item.Title, item.Link, item.PublishedAt, item.ImageURL,
		item.ChannelTitle, item.IsSelfFeed, pq.Array(item.Categories)).Scan(&id)
	if err != nil {
		return feed.Item{}, fmt.Errorf("failed to upsert item: %w", err)
	}

	item.ID = id
	return item, nil
}

func (t *itemTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (t *itemTx) Rollback() error {
	return t.tx.Rollback()
}
