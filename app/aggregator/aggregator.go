package aggregator

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/cache"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/database"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/sources"
)

// Options carries the aggregation settings fixed at construction time.
type Options struct {
	SelfFeedURL      string
	RecencyWindow    time.Duration
	CacheTTL         time.Duration
	WorkerCount      int
	PlaceholderImage string
}

// Aggregator runs one full aggregation cycle: fetch every configured
// source, normalize and filter the items, merge them against the store,
// sort newest first and publish the whole collection to the cache at once.
// Only one cycle runs at a time; a trigger arriving while a cycle is in
// flight awaits that cycle's result instead of starting another.
type Aggregator struct {
	sourceList []sources.Source
	client     *feed.Client
	filterer   *feed.Filterer
	itemCache  cache.ItemCache
	repo       database.ItemRepository // nil when running without a store
	opts       Options

	group singleflight.Group
}

func New(sourceList []sources.Source, client *feed.Client, filterer *feed.Filterer,
	itemCache cache.ItemCache, repo database.ItemRepository, opts Options) *Aggregator {
	if opts.WorkerCount <= 0 {
		opts.WorkerCount = 1
	}

	return &Aggregator{
		sourceList: sourceList,
		client:     client,
		filterer:   filterer,
		itemCache:  itemCache,
		repo:       repo,
		opts:       opts,
	}
}

// Run executes a cycle, or joins the one already in flight.
func (a *Aggregator) Run(ctx context.Context) ([]feed.Item, error) {
	result, err, shared := a.group.Do("cycle", func() (interface{}, error) {
		return a.runCycle(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		slog.Debug("Concurrent trigger satisfied by in-flight cycle")
	}

	return result.([]feed.Item), nil
}

func (a *Aggregator) runCycle(ctx context.Context) ([]feed.Item, error) {
	started := time.Now()
	cutoff := time.Now().UTC().Add(-a.opts.RecencyWindow)

	channels := a.fetchAll(ctx)

	// a cancelled context fails every fetch the same way a dead source
	// does; the truncated result must never reach the store or the cache
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("cycle aborted: %w", err)
	}

	var tx database.ItemTx
	if a.repo != nil {
		var err error
		tx, err = a.repo.Begin()
		if err != nil {
			return nil, fmt.Errorf("failed to begin cycle transaction: %w", err)
		}
		defer tx.Rollback()
	}

	var items []feed.Item
	seen := make(map[string]struct{})
	fetchedCount := 0
	skippedCount := 0

	// fixed source order keeps the tie-break of equal timestamps stable
	for i, source := range a.sourceList {
		channel := channels[i]
		if channel == nil {
			continue
		}

		channelTitle := channel.Title
		if source.Name != "" {
			channelTitle = source.Name
		}
		isSelf := source.URL == a.opts.SelfFeedURL

		for _, raw := range channel.Items {
			fetchedCount++

			publishedAt := feed.ParsePubDate(raw.PubDate)

			admitted, reason := a.filterer.Admit(raw.Categories, publishedAt, cutoff)
			if !admitted {
				slog.Debug("Item rejected", "title", raw.Title, "reason", reason)
				skippedCount++
				continue
			}

			// two sources carrying the same article: first occurrence wins
			key := raw.Title + "|" + raw.Link
			if _, duplicate := seen[key]; duplicate {
				slog.Debug("Duplicate item within cycle", "title", raw.Title)
				skippedCount++
				continue
			}
			seen[key] = struct{}{}

			item := feed.Item{
				Title:        raw.Title,
				Link:         raw.Link,
				PublishedAt:  publishedAt,
				ImageURL:     feed.ResolveImage(raw.EnclosureURL, raw.Description, a.opts.PlaceholderImage),
				ChannelTitle: channelTitle,
				IsSelfFeed:   isSelf,
				Categories:   raw.Categories,
			}

			if tx != nil {
				merged, err := a.merge(tx, item)
				if err != nil {
					return nil, err
				}
				item = merged
			}

			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})

	if tx != nil {
		if err := tx.Commit(); err != nil {
			// previous cache contents stay valid; next cycle retries
			return nil, fmt.Errorf("failed to commit cycle: %w", err)
		}
	}

	if err := a.itemCache.SetItems(items, a.opts.CacheTTL); err != nil {
		slog.Error("Failed to publish items to cache", "error", err)
	}

	slog.Info("Aggregation cycle completed",
		"duration", time.Since(started),
		"sources", len(a.sourceList),
		"fetched", fetchedCount,
		"rejected", skippedCount,
		"published", len(items))

	return items, nil
}

// fetchAll retrieves every source on a bounded worker pool. The result
// slice is indexed by source position; a failed source leaves a nil slot.
func (a *Aggregator) fetchAll(ctx context.Context) []*feed.Channel {
	channels := make([]*feed.Channel, len(a.sourceList))

	jobs := make(chan int, len(a.sourceList))
	var wg sync.WaitGroup

	workerCount := a.opts.WorkerCount
	if workerCount > len(a.sourceList) {
		workerCount = len(a.sourceList)
	}

	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				url := a.sourceList[idx].URL

				channel, err := a.client.Fetch(ctx, url)
				if err != nil {
					slog.Warn("Source fetch failed, skipping for this cycle", "url", url, "error", err)
					continue
				}

				channels[idx] = channel
			}
		}()
	}

	for idx := range a.sourceList {
		jobs <- idx
	}
	close(jobs)

	wg.Wait()

	return channels
}

// merge reconciles an incoming item with the stored collection. A known
// (title, link) keeps its identifier and its already-resolved image; a new
// one gets an identifier from the store. Either way the row is rewritten so
// published_at and categories stay in sync with the source.
func (a *Aggregator) merge(tx database.ItemTx, item feed.Item) (feed.Item, error) {
	existing, err := tx.GetByTitleLink(item.Title, item.Link)
	if err != nil {
		return feed.Item{}, fmt.Errorf("failed to look up item: %w", err)
	}

	if existing != nil {
		item.ID = existing.ID
		if existing.ImageURL != "" {
			item.ImageURL = existing.ImageURL
		}
	}

	merged, err := tx.Upsert(item)
	if err != nil {
		return feed.Item{}, fmt.Errorf("failed to upsert item: %w", err)
	}

	return merged, nil
}
