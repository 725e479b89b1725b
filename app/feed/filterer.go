package feed

import (
	"fmt"
	"strings"
	"time"
)

// Filterer decides whether a normalized item is admissible. Category
// exclusion and the recency cutoff are independent checks; an item must
// pass both.
type Filterer struct {
	excludedCategories []string
}

func NewFilterer(excludedCategories []string) *Filterer {
	return &Filterer{excludedCategories: excludedCategories}
}

// Admit reports whether an item may enter the output set, with a reason
// when it may not. Category matching is case-insensitive and exact.
func (f *Filterer) Admit(categories []string, publishedAt, cutoff time.Time) (bool, string) {
	for _, category := range categories {
		for _, excluded := range f.excludedCategories {
			if strings.EqualFold(strings.TrimSpace(category), excluded) {
				return false, fmt.Sprintf("excluded category '%s'", category)
			}
		}
	}

	if publishedAt.Before(cutoff) {
		return false, fmt.Sprintf("published at %s, before cutoff %s",
			publishedAt.Format(time.RFC3339), cutoff.Format(time.RFC3339))
	}

	return true, ""
}
