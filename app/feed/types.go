package feed

import (
	"time"
)

// RawItem carries the literal fields of one <item> element as fetched,
// before any normalization. The pubDate string is kept verbatim so date
// handling stays downstream of the client.
type RawItem struct {
	Title        string
	Link         string
	PubDate      string
	Categories   []string
	EnclosureURL string
	Description  string
}

// Channel is the result of fetching one source.
type Channel struct {
	Title string
	Items []RawItem
}

// Item is the normalized unit held in the cache and the store.
// (Title, Link) is the natural deduplication key; ID is assigned by the
// store on first persistence and stays empty when no store is configured.
type Item struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	PublishedAt  time.Time `json:"published_at"`
	ImageURL     string    `json:"image_url"`
	ChannelTitle string    `json:"channel_title"`
	IsSelfFeed   bool      `json:"is_self_feed"`
	Categories   []string  `json:"categories"`
}
