package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/cache"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/database"
	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

// CycleRunner triggers a synchronous aggregation cycle, used on cache miss.
type CycleRunner interface {
	Run(ctx context.Context) ([]feed.Item, error)
}

type Handler struct {
	itemCache  cache.ItemCache
	aggregator CycleRunner
	repo       database.ItemRepository // nil when running without a store
	httpClient *http.Client
}

func NewHandler(itemCache cache.ItemCache, aggregator CycleRunner, repo database.ItemRepository) *Handler {
	return &Handler{
		itemCache:  itemCache,
		aggregator: aggregator,
		repo:       repo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetFeed serves the current published collection, newest first. A cache
// miss runs a cycle synchronously and serves its result.
func (h *Handler) GetFeed(c *gin.Context) {
	items, ok, err := h.itemCache.GetItems()
	if err != nil {
		slog.Warn("Cache read failed, falling back to a fresh cycle", "error", err)
	}

	if !ok {
		items, err = h.aggregator.Run(c.Request.Context())
		if err != nil {
			slog.Error("On-demand aggregation cycle failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to aggregate feeds"})
			return
		}
	}

	if items == nil {
		items = []feed.Item{}
	}

	c.JSON(http.StatusOK, items)
}

// ImageProxy passes an upstream image through with its original
// Content-Type so browsers can load third-party images from this origin.
func (h *Handler) ImageProxy(c *gin.Context) {
	imageURL := c.Query("url")
	if imageURL == "" {
		c.String(http.StatusBadRequest, "URL is required")
		return
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, imageURL, nil)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid URL")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		slog.Warn("Image proxy fetch failed", "url", imageURL, "error", err)
		c.String(http.StatusBadGateway, "failed to fetch image")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.String(resp.StatusCode, "failed to fetch image from %s", imageURL)
		return
	}

	c.Header("Content-Type", resp.Header.Get("Content-Type"))
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		slog.Debug("Image proxy stream interrupted", "url", imageURL, "error", err)
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"cache":     h.itemCache.Health(),
	}

	if ttl, err := h.itemCache.TTL(); err == nil {
		health["cache_ttl_seconds"] = int(ttl.Seconds())
	}

	if h.repo != nil {
		if count, err := h.repo.GetItemCount(); err == nil {
			health["stored_items"] = count
		}
		if recent, err := h.repo.GetRecent(1); err == nil && len(recent) > 0 {
			health["latest_published_at"] = recent[0].PublishedAt.Format(time.RFC3339)
		}
	}

	c.JSON(http.StatusOK, health)
}
