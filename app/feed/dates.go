package feed

import (
	"strings"
	"time"
)

// SentinelDate stands in for publication dates that could not be parsed.
// It means "oldest possible", not "unknown": such items sort last and fall
// outside any recency window.
var SentinelDate = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// Upstream feeds are inconsistent about pubDate formats. First match wins.
var pubDateFormats = []string{
	time.RFC1123Z, // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC1123,  // Mon, 02 Jan 2006 15:04:05 MST
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700", // no weekday
	"2 Jan 2006 15:04:05 -0700",
	time.RFC822Z,
	time.RFC822,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"02/01/2006 15:04:05",
}

// ParsePubDate converts a raw pubDate string to a UTC instant. It never
// fails: input matching none of the accepted formats yields SentinelDate so
// the rest of the pipeline keeps running.
func ParsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SentinelDate
	}

	for _, layout := range pubDateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}

	return SentinelDate
}
