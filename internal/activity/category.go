// Package activity turns decoded Takeout activity logs into typed records.
package activity

import (
	"fmt"
	"strings"
	"time"
)

// Category identifies one kind of activity log found in a Takeout archive.
type Category string

const (
	Watch    Category = "watch"
	Search   Category = "search"
	Query    Category = "query"
	Location Category = "location"
)

// Categories returns every known category in receipt order.
func Categories() []Category {
	return []Category{Watch, Search, Query, Location}
}

var categoryAliases = map[string]Category{
	"watch":             Watch,
	"youtube-watch":     Watch,
	"watch-history":     Watch,
	"search":            Search,
	"youtube-search":    Search,
	"search-history":    Search,
	"query":             Query,
	"google":            Query,
	"google-search":     Query,
	"location":          Location,
	"location-history":  Location,
	"semantic-location": Location,
}

// ParseCategory maps user input to a known Category. Matching is
// case-insensitive and accepts a few descriptive aliases.
func ParseCategory(s string) (Category, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if c, ok := categoryAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q (use watch, search, query, or location)", s)
}

// ParseCategories parses a list and removes duplicates, keeping the
// canonical receipt order.
func ParseCategories(values []string) ([]Category, error) {
	seen := make(map[Category]bool, len(values))
	for _, v := range values {
		c, err := ParseCategory(v)
		if err != nil {
			return nil, err
		}
		seen[c] = true
	}
	var out []Category
	for _, c := range Categories() {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Title is the human-readable name of the category.
func (c Category) Title() string {
	switch c {
	case Watch:
		return "YouTube Watch History"
	case Search:
		return "YouTube Search History"
	case Query:
		return "Google Search History"
	case Location:
		return "Location History"
	default:
		return string(c)
	}
}

// Record is one normalized activity log entry. A zero Time means the
// entry carried no usable timestamp.
type Record struct {
	Kind  Category
	Label string
	Time  time.Time
}

// HasTime reports whether the record carries a timestamp.
func (r Record) HasTime() bool {
	return !r.Time.IsZero()
}
