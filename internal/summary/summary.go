// Package summary aggregates activity records into bounded per-category
// statistics.
package summary

import (
	"sort"
	"strings"
	"time"

	"github.com/runnerr0/kickback/internal/activity"
)

// DefaultTopK is the ranking length used when Options.TopK is not positive.
const DefaultTopK = 5

// UnknownHour is reported as MostActiveHour when no record has a timestamp.
const UnknownHour = -1

// DefaultNightHours returns the default night window, 22:00 to 03:59 UTC.
func DefaultNightHours() []int {
	return []int{22, 23, 0, 1, 2, 3}
}

// Options tunes a single Summarize call.
type Options struct {
	// TopK bounds TopItems. Zero or negative means DefaultTopK.
	TopK int
	// NightHours is the set of UTC hours counted by NightRatio. Nil means
	// DefaultNightHours.
	NightHours []int
	// Cutoff, when set, drops records before it and records without a
	// timestamp before anything else is computed.
	Cutoff time.Time
}

func (o Options) withDefaults() Options {
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.NightHours == nil {
		o.NightHours = DefaultNightHours()
	}
	return o
}

// RankedItem is one entry of a frequency ranking.
type RankedItem struct {
	Label string
	Count int
}

// CategorySummary is the aggregate of one category for one run.
type CategorySummary struct {
	Category       activity.Category
	TotalCount     int
	UnitValue      float64
	EstimatedValue Money
	TopItems       []RankedItem

	// MostActiveHour is the UTC hour with the most records, or UnknownHour.
	MostActiveHour       int
	TimestampedCount     int
	NightRatio           float64
	UniqueCount          int
	LongestTermWordCount int
}

// ActiveHourKnown reports whether MostActiveHour was computed from data.
func (s CategorySummary) ActiveHourKnown() bool {
	return s.MostActiveHour >= 0 && s.MostActiveHour < 24
}

// TopLabels returns the ranked labels without their counts.
func (s CategorySummary) TopLabels() []string {
	labels := make([]string, len(s.TopItems))
	for i, item := range s.TopItems {
		labels[i] = item.Label
	}
	return labels
}

// Empty returns the all-zero summary of a category.
func Empty(category activity.Category) CategorySummary {
	return CategorySummary{Category: category, MostActiveHour: UnknownHour}
}

// Summarize computes the summary of records in a single pass. It never
// fails; empty input yields Empty(category) with UnitValue set.
func Summarize(category activity.Category, records []activity.Record, unitValue float64, opts Options) CategorySummary {
	opts = opts.withDefaults()

	night := make(map[int]bool, len(opts.NightHours))
	for _, h := range opts.NightHours {
		night[h] = true
	}

	s := Empty(category)
	s.UnitValue = unitValue

	var hours [24]int
	nightCount := 0
	counts := make(map[string]int)
	var order []string

	for _, r := range records {
		if !opts.Cutoff.IsZero() && (!r.HasTime() || r.Time.Before(opts.Cutoff)) {
			continue
		}
		s.TotalCount++

		if r.HasTime() {
			h := r.Time.UTC().Hour()
			hours[h]++
			s.TimestampedCount++
			if night[h] {
				nightCount++
			}
		}

		label := strings.TrimSpace(r.Label)
		if label == "" {
			continue
		}
		if _, seen := counts[label]; !seen {
			order = append(order, label)
		}
		counts[label]++
		if words := len(strings.Fields(label)); words > s.LongestTermWordCount {
			s.LongestTermWordCount = words
		}
	}

	s.EstimatedValue = EstimateValue(s.TotalCount, unitValue)
	s.UniqueCount = len(order)
	s.TopItems = rank(order, counts, opts.TopK)
	if s.TimestampedCount > 0 {
		s.MostActiveHour = busiestHour(hours)
		s.NightRatio = float64(nightCount) / float64(s.TimestampedCount)
	}
	return s
}

// rank orders labels by count, descending. order holds each label at its
// first appearance, and the stable sort keeps that order among equal counts.
func rank(order []string, counts map[string]int, k int) []RankedItem {
	items := make([]RankedItem, len(order))
	for i, label := range order {
		items[i] = RankedItem{Label: label, Count: counts[label]}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if len(items) > k {
		items = items[:k]
	}
	return items
}

// busiestHour returns the hour with the highest count; the lowest hour wins ties.
func busiestHour(hours [24]int) int {
	best := 0
	for h := 1; h < 24; h++ {
		if hours[h] > hours[best] {
			best = h
		}
	}
	return best
}

// Total sums the estimated values of the given summaries.
func Total(summaries []CategorySummary) Money {
	var total Money
	for _, s := range summaries {
		total += s.EstimatedValue
	}
	return total
}
