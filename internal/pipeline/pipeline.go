// Package pipeline runs one receipt: locate, extract, aggregate, classify
// and format.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/classify"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/receipt"
	"github.com/runnerr0/kickback/internal/summary"
	"github.com/runnerr0/kickback/internal/takeout"
)

// Options controls one run.
type Options struct {
	// Categories to include; empty means all.
	Categories []activity.Category
	// Explicit marks Categories as chosen by the user, so categories that
	// are not found are reported as missing.
	Explicit    bool
	Values      config.ValuesConfig
	TopK        int
	RecencyDays int
	NightHours  []int
	Label       bool
	Mood        bool
}

// OptionsFromConfig builds run options from configuration. Categories set
// in the config file count as an explicit choice only when they differ
// from the full set.
func OptionsFromConfig(cfg *config.Config) Options {
	cats := cfg.Receipt.Categories()
	return Options{
		Categories:  cats,
		Explicit:    len(cats) < len(activity.Categories()),
		Values:      cfg.Values,
		TopK:        cfg.Receipt.TopK,
		RecencyDays: cfg.Receipt.RecencyDays,
		NightHours:  cfg.Receipt.NightHours,
		Label:       cfg.Receipt.Label,
		Mood:        cfg.Receipt.Mood,
	}
}

// Report is the complete, immutable result of a run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	RecencyDays int
	Cutoff      time.Time
	Summaries   []summary.CategorySummary
	Label       *classify.Result
	Mood        *classify.Result
	Total       summary.Money
	// Missing is set when explicitly requested categories were not found.
	Missing *takeout.MissingInputError
	Receipt string
}

// Summary returns the summary of category c, if it was produced.
func (r *Report) Summary(c activity.Category) (summary.CategorySummary, bool) {
	for _, s := range r.Summaries {
		if s.Category == c {
			return s, true
		}
	}
	return summary.CategorySummary{}, false
}

// Runner executes runs. It holds no per-run state and is safe to share.
type Runner struct {
	logger  logging.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewRunner returns a Runner. logger may be nil; metrics may be nil.
func NewRunner(logger logging.Logger, metrics *Metrics) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{logger: logger, metrics: metrics, now: time.Now}
}

// WithClock returns a copy of r that reads the current time from now.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	c := *r
	c.now = now
	return &c
}

// Run produces a report from the located files in b. It returns an error
// wrapping takeout.ErrNothingToSummarize when no included category yields
// a single record; the error also wraps the *takeout.MissingInputError
// when requested categories were not found.
func (r *Runner) Run(ctx context.Context, b *takeout.Bundle, opts Options) (*Report, error) {
	started := r.now()
	report := &Report{
		RunID:       uuid.NewString(),
		GeneratedAt: started.UTC(),
		RecencyDays: opts.RecencyDays,
	}
	log := r.logger.With(logging.String("run_id", report.RunID))

	cats := opts.Categories
	if len(cats) == 0 {
		cats = activity.Categories()
	}
	if opts.Explicit {
		report.Missing = b.Missing(cats)
		if report.Missing != nil {
			log.Warn("requested categories not found", logging.Err(report.Missing))
		}
	}

	sumOpts := summary.Options{TopK: opts.TopK, NightHours: opts.NightHours}
	if opts.RecencyDays > 0 {
		report.Cutoff = started.UTC().Add(-time.Duration(opts.RecencyDays) * 24 * time.Hour)
		sumOpts.Cutoff = report.Cutoff
	}

	counted := 0
	for _, c := range cats {
		if err := ctx.Err(); err != nil {
			r.metrics.ObserveRun(OutcomeError, r.now().Sub(started))
			return nil, err
		}
		src, ok := b.Sources[c]
		if !ok {
			log.Debug("category not present", logging.String("category", string(c)))
			continue
		}

		records, err := src.Records()
		if err != nil {
			log.Warn("unreadable activity file, treating as empty",
				logging.String("category", string(c)),
				logging.String("file", src.Name),
				logging.Err(err))
		}

		s := summary.Summarize(c, records, opts.Values.UnitValue(c), sumOpts)
		log.Debug("summarized category",
			logging.String("category", string(c)),
			logging.String("file", src.Name),
			logging.Int("extracted", len(records)),
			logging.Int("counted", s.TotalCount))
		r.metrics.ObserveRecords(c, s.TotalCount)

		report.Summaries = append(report.Summaries, s)
		counted += s.TotalCount
	}

	if counted == 0 {
		r.metrics.ObserveRun(OutcomeEmpty, r.now().Sub(started))
		if report.Missing != nil {
			return nil, fmt.Errorf("%w: %w", takeout.ErrNothingToSummarize, report.Missing)
		}
		return nil, takeout.ErrNothingToSummarize
	}

	if opts.Label {
		label := classify.Label(report.Summaries)
		report.Label = &label
	}
	if opts.Mood {
		mood := classify.Mood(report.Summaries)
		report.Mood = &mood
	}
	report.Total = summary.Total(report.Summaries)
	report.Receipt = receipt.Format(receipt.Input{
		Summaries:   report.Summaries,
		Label:       report.Label,
		Mood:        report.Mood,
		RecencyDays: report.RecencyDays,
		Total:       report.Total,
	})

	elapsed := r.now().Sub(started)
	r.metrics.ObserveRun(OutcomeOK, elapsed)
	log.Info("receipt generated",
		logging.Int("records", counted),
		logging.String("total", report.Total.String()),
		logging.Duration("elapsed", elapsed))

	return report, nil
}
