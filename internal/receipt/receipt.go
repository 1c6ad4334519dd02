// Package receipt renders run summaries as a plain-text data receipt.
package receipt

import (
	"fmt"
	"strings"

	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/classify"
	"github.com/runnerr0/kickback/internal/summary"
)

const (
	Title     = "KICKBACK DATA RECEIPT"
	Separator = "----------------------------------------"

	labelWidth = 20
	noData     = "(no data)"
)

// Input is everything a receipt shows. Summaries may arrive in any order;
// sections are always written watch, search, query, location.
type Input struct {
	Summaries []summary.CategorySummary
	Label     *classify.Result
	Mood      *classify.Result
	// RecencyDays adds a filter line when positive.
	RecencyDays int
	Total       summary.Money
}

// Format renders the receipt. The output depends only on in.
func Format(in Input) string {
	var b strings.Builder

	b.WriteString(Title + "\n")
	if line := FilterLine(in.RecencyDays); line != "" {
		b.WriteString(line + "\n")
	}
	b.WriteString(Separator + "\n")

	byCategory := make(map[activity.Category]summary.CategorySummary, len(in.Summaries))
	for _, s := range in.Summaries {
		byCategory[s.Category] = s
	}
	for _, c := range activity.Categories() {
		s, ok := byCategory[c]
		if !ok {
			continue
		}
		b.WriteString("\n")
		writeCategory(&b, s)
		b.WriteString("\n" + Separator + "\n")
	}

	if in.Label != nil {
		b.WriteString("\nDATA LABEL\n\n")
		b.WriteString(in.Label.Label + "\n")
		if in.Label.Description != "" {
			b.WriteString(in.Label.Description + "\n")
		}
		b.WriteString("\n" + Separator + "\n")
	}

	if in.Mood != nil {
		b.WriteString("\nDATA MOOD\n\n")
		fmt.Fprintf(&b, "You were a %s.\n", in.Mood.Label)
		b.WriteString("\n" + Separator + "\n")
	}

	b.WriteString("\nSUMMARY\n\n")
	fmt.Fprintf(&b, "Total Value to Google  %s\n", in.Total)
	fmt.Fprintf(&b, "You Received           %s\n", summary.Money(0))
	b.WriteString("\nThey watched you watch.\n")
	b.WriteString("Time to take your data back.\n")

	return b.String()
}

// FilterLine describes a recency window, or returns "" when there is none.
func FilterLine(days int) string {
	switch {
	case days <= 0:
		return ""
	case days == 365:
		return "Filter: Last 12 Months"
	case days == 1:
		return "Filter: Last 1 Day"
	default:
		return fmt.Sprintf("Filter: Last %d Days", days)
	}
}

// HourLabel renders a most-active hour as "22:00", or "N/A" when unknown.
func HourLabel(s summary.CategorySummary) string {
	if !s.ActiveHourKnown() {
		return "N/A"
	}
	return fmt.Sprintf("%d:00", s.MostActiveHour)
}

func writeCategory(b *strings.Builder, s summary.CategorySummary) {
	b.WriteString(strings.ToUpper(s.Category.Title()) + "\n\n")

	switch s.Category {
	case activity.Watch:
		field(b, "Videos Watched", fmt.Sprint(s.TotalCount))
		field(b, "Most Active Hour", HourLabel(s))
		field(b, "Night Ratio", fmt.Sprintf("%.2f", s.NightRatio))
		topList(b, "Top Watched Titles:", s)
	case activity.Search:
		field(b, "Searches Made", fmt.Sprint(s.TotalCount))
		field(b, "Unique Searches", fmt.Sprint(s.UniqueCount))
		topList(b, "Top Search Terms:", s)
	case activity.Query:
		field(b, "Queries Made", fmt.Sprint(s.TotalCount))
		field(b, "Unique Queries", fmt.Sprint(s.UniqueCount))
		topList(b, "Top Queries:", s)
	case activity.Location:
		field(b, "Pings Logged", fmt.Sprint(s.TotalCount))
	}

	b.WriteString("\n")
	field(b, "Ad Value Generated", s.EstimatedValue.String())
}

func field(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "%-*s%s\n", labelWidth, name, value)
}

func topList(b *strings.Builder, heading string, s summary.CategorySummary) {
	b.WriteString("\n" + heading + "\n")
	if len(s.TopItems) == 0 {
		b.WriteString("  - " + noData + "\n")
		return
	}
	for _, item := range s.TopItems {
		b.WriteString("  - " + item.Label + "\n")
	}
}
