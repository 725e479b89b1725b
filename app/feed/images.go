package feed

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ResolveImage picks the representative image URL for an item: the enclosure
// URL when present, otherwise the first <img src="..."> found in the
// description markup, otherwise the configured fallback. Never empty.
func ResolveImage(enclosureURL, description, fallback string) string {
	if enclosureURL != "" {
		return enclosureURL
	}

	if description != "" {
		if src := firstImageSrc(description); src != "" {
			return src
		}
	}

	return fallback
}

func firstImageSrc(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	src, _ := doc.Find("img[src]").First().Attr("src")
	return src
}
