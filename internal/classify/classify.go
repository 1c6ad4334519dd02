// Package classify maps category summaries to a single label through
// ordered, first-match decision lists.
package classify

import (
	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/summary"
)

// Result is the outcome of a decision list.
type Result struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Inputs is what rules see. A category that was not summarized reads as
// all zeros with an unknown active hour.
type Inputs struct {
	Watch  summary.CategorySummary
	Search summary.CategorySummary
}

// NewInputs picks the watch and search summaries out of summaries.
func NewInputs(summaries []summary.CategorySummary) Inputs {
	in := Inputs{
		Watch:  summary.Empty(activity.Watch),
		Search: summary.Empty(activity.Search),
	}
	for _, s := range summaries {
		switch s.Category {
		case activity.Watch:
			in.Watch = s
		case activity.Search:
			in.Search = s
		}
	}
	return in
}

// Rule pairs a predicate with the result it yields.
type Rule struct {
	Name   string
	Match  func(Inputs) bool
	Result Result
}

// Table is an ordered decision list. Rules overlap; the first match wins.
type Table struct {
	Rules   []Rule
	Default Result
}

// FirstMatch returns the index of the first matching rule, or -1.
func (t Table) FirstMatch(in Inputs) int {
	for i, r := range t.Rules {
		if r.Match(in) {
			return i
		}
	}
	return -1
}

// Evaluate returns the result of the first matching rule, or the default.
func (t Table) Evaluate(in Inputs) Result {
	if i := t.FirstMatch(in); i >= 0 {
		return t.Rules[i].Result
	}
	return t.Default
}

// Label classifies a run with the data label table.
func Label(summaries []summary.CategorySummary) Result {
	return LabelTable().Evaluate(NewInputs(summaries))
}

// Mood classifies a run with the data mood table.
func Mood(summaries []summary.CategorySummary) Result {
	return MoodTable().Evaluate(NewInputs(summaries))
}

func between(n, lo, hi int) bool {
	return n >= lo && n <= hi
}
