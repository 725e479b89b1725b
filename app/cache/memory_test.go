package cache

import (
	"testing"
	"time"

	"github.com/olucasmac/news.infinitoaocubo.com.br/app/feed"
)

func TestMemoryCache_MissWhenEmpty(t *testing.T) {
	c := NewMemoryCache()

	_, ok, err := c.GetItems()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("Expected miss on empty cache")
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()

	items := []feed.Item{
		{Title: "A", Link: "https://example.com/a"},
		{Title: "B", Link: "https://example.com/b"},
	}

	if err := c.SetItems(items, time.Minute); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.GetItems()
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("Expected hit after set")
	}
	if len(got) != 2 || got[0].Title != "A" || got[1].Title != "B" {
		t.Errorf("Unexpected items: %v", got)
	}
}

func TestMemoryCache_ReplacedWholesale(t *testing.T) {
	c := NewMemoryCache()

	c.SetItems([]feed.Item{{Title: "Old", Link: "https://example.com/old"}}, time.Minute)
	c.SetItems([]feed.Item{{Title: "New", Link: "https://example.com/new"}}, time.Minute)

	got, ok, _ := c.GetItems()
	if !ok || len(got) != 1 || got[0].Title != "New" {
		t.Errorf("Expected collection to be replaced wholesale, got %v", got)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache()

	c.SetItems([]feed.Item{{Title: "A", Link: "https://example.com/a"}}, 20*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	_, ok, _ := c.GetItems()
	if ok {
		t.Error("Expected miss after TTL expiry")
	}
}

func TestMemoryCache_Health(t *testing.T) {
	c := NewMemoryCache()

	health := c.Health()
	if health["status"] != "healthy" {
		t.Errorf("Expected healthy status, got %v", health["status"])
	}
	if health["type"] != "memory" {
		t.Errorf("Expected memory type, got %v", health["type"])
	}
}

func TestMemoryCache_TTL(t *testing.T) {
	c := NewMemoryCache()

	ttl, err := c.TTL()
	if err != nil {
		t.Fatal(err)
	}
	if ttl != 0 {
		t.Errorf("Expected zero TTL before set, got %v", ttl)
	}

	c.SetItems(nil, time.Hour)

	ttl, _ = c.TTL()
	if ttl <= 59*time.Minute || ttl > time.Hour {
		t.Errorf("Expected TTL close to one hour, got %v", ttl)
	}
}
