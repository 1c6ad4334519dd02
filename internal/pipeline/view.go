package pipeline

import (
	"time"

	"github.com/runnerr0/kickback/internal/classify"
	"github.com/runnerr0/kickback/internal/receipt"
	"github.com/runnerr0/kickback/internal/summary"
)

// ReportJSON is the wire form of a Report, shared by the CLI and the API.
type ReportJSON struct {
	RunID           string           `json:"run_id"`
	GeneratedAt     string           `json:"generated_at"`
	Filter          string           `json:"filter,omitempty"`
	Cutoff          string           `json:"cutoff,omitempty"`
	Summaries       []SummaryJSON    `json:"summaries"`
	Label           *classify.Result `json:"label,omitempty"`
	Mood            *classify.Result `json:"mood,omitempty"`
	TotalValue      string           `json:"total_value"`
	TotalValueCents int64            `json:"total_value_cents"`
	Received        string           `json:"received"`
	Missing         []string         `json:"missing,omitempty"`
	Receipt         string           `json:"receipt"`
}

type SummaryJSON struct {
	Category             string       `json:"category"`
	Title                string       `json:"title"`
	TotalCount           int          `json:"total_count"`
	UnitValue            float64      `json:"unit_value"`
	EstimatedValue       string       `json:"estimated_value"`
	EstimatedValueCents  int64        `json:"estimated_value_cents"`
	TopItems             []RankedJSON `json:"top_items"`
	MostActiveHour       *int         `json:"most_active_hour"`
	NightRatio           float64      `json:"night_ratio"`
	UniqueCount          int          `json:"unique_count"`
	LongestTermWordCount int          `json:"longest_term_word_count"`
}

type RankedJSON struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// JSON converts the report to its wire form.
func (r *Report) JSON() ReportJSON {
	out := ReportJSON{
		RunID:           r.RunID,
		GeneratedAt:     r.GeneratedAt.Format(time.RFC3339),
		Filter:          receipt.FilterLine(r.RecencyDays),
		Summaries:       make([]SummaryJSON, len(r.Summaries)),
		Label:           r.Label,
		Mood:            r.Mood,
		TotalValue:      r.Total.String(),
		TotalValueCents: int64(r.Total),
		Received:        summary.Money(0).String(),
		Receipt:         r.Receipt,
	}
	if !r.Cutoff.IsZero() {
		out.Cutoff = r.Cutoff.Format(time.RFC3339)
	}
	for i, s := range r.Summaries {
		out.Summaries[i] = SummaryToJSON(s)
	}
	if r.Missing != nil {
		for _, c := range r.Missing.Categories {
			out.Missing = append(out.Missing, string(c))
		}
	}
	return out
}

// SummaryToJSON converts one category summary to its wire form.
func SummaryToJSON(s summary.CategorySummary) SummaryJSON {
	out := SummaryJSON{
		Category:             string(s.Category),
		Title:                s.Category.Title(),
		TotalCount:           s.TotalCount,
		UnitValue:            s.UnitValue,
		EstimatedValue:       s.EstimatedValue.String(),
		EstimatedValueCents:  int64(s.EstimatedValue),
		TopItems:             make([]RankedJSON, len(s.TopItems)),
		NightRatio:           s.NightRatio,
		UniqueCount:          s.UniqueCount,
		LongestTermWordCount: s.LongestTermWordCount,
	}
	if s.ActiveHourKnown() {
		h := s.MostActiveHour
		out.MostActiveHour = &h
	}
	for i, item := range s.TopItems {
		out.TopItems[i] = RankedJSON{Label: item.Label, Count: item.Count}
	}
	return out
}
