package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
)

// Client fetches and parses a single RSS source. A failure is source-level:
// the caller skips the source for the current cycle and moves on.
type Client struct {
	httpClient   *http.Client
	gofeedParser *gofeed.Parser
	userAgent    string
	timeout      time.Duration
}

func NewClient(httpClient *http.Client, userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient:   httpClient,
		gofeedParser: gofeed.NewParser(),
		userAgent:    userAgent,
		timeout:      timeout,
	}
}

// Fetch retrieves one feed URL and returns the channel title and its items
// in document order. Raw pubDate strings pass through untouched; date
// normalization and image resolution happen downstream. An item missing a
// title or link is skipped without failing the source.
func (c *Client) Fetch(ctx context.Context, url string) (*Channel, error) {
	data, err := c.download(ctx, url)
	if err != nil {
		return nil, err
	}

	parsed, err := c.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channel := &Channel{
		Title: parsed.Title,
		Items: make([]RawItem, 0, len(parsed.Items)),
	}

	for _, item := range parsed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			slog.Debug("Skipping item without title or link", "url", url)
			continue
		}

		raw := RawItem{
			Title:       item.Title,
			Link:        item.Link,
			PubDate:     item.Published,
			Description: item.Description,
			Categories:  item.Categories,
		}

		// RSS 2.0 allows only one enclosure per item
		if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
			raw.EnclosureURL = item.Enclosures[0].URL
		}

		channel.Items = append(channel.Items, raw)
	}

	return channel, nil
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
