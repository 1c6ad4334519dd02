package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/runnerr0/kickback/internal/classify"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/receipt"
)

// summaryJSON is the JSON output structure for the summary command.
type summaryJSON struct {
	RunID      string                 `json:"run_id"`
	Filter     string                 `json:"filter,omitempty"`
	Categories []pipeline.SummaryJSON `json:"categories"`
	Label      *classify.Result       `json:"label,omitempty"`
	Mood       *classify.Result       `json:"mood,omitempty"`
	TotalValue string                 `json:"total_value"`
}

// Execute implements the go-flags Commander interface for SummaryCommand.
func (c *SummaryCommand) Execute(args []string) error {
	cfg, logger, err := setup(c.globals, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()
	return c.executeWith(ctx, cfg, logger)
}

// executeWith runs the command against a provided config and logger (for testing).
func (c *SummaryCommand) executeWith(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	opts, err := runOptions(cfg, c.RunFlags)
	if err != nil {
		return err
	}

	report, err := buildReport(ctx, c.Args.Paths, opts, logger)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		out := summaryJSON{
			RunID:      report.RunID,
			Filter:     receipt.FilterLine(report.RecencyDays),
			Categories: make([]pipeline.SummaryJSON, len(report.Summaries)),
			Label:      report.Label,
			Mood:       report.Mood,
			TotalValue: report.Total.String(),
		}
		for i, s := range report.Summaries {
			out.Categories[i] = pipeline.SummaryToJSON(s)
		}
		return printJSON(os.Stdout, out)
	}

	return printSummaryTable(report)
}

func printSummaryTable(report *pipeline.Report) error {
	if line := receipt.FilterLine(report.RecencyDays); line != "" {
		fmt.Println(line)
		fmt.Println()
	}

	header := []string{"Category", "Events", "Unique", "Active Hour", "Night Ratio", "Value", "Top Item"}
	var rows [][]string
	events := 0
	for _, s := range report.Summaries {
		top := "-"
		if len(s.TopItems) > 0 {
			top = fmt.Sprintf("%s (%s)", s.TopItems[0].Label, formatNumber(s.TopItems[0].Count))
		}
		rows = append(rows, []string{
			s.Category.Title(),
			formatNumber(s.TotalCount),
			formatNumber(s.UniqueCount),
			receipt.HourLabel(s),
			fmt.Sprintf("%.2f", s.NightRatio),
			s.EstimatedValue.String(),
			top,
		})
		events += s.TotalCount
	}
	rows = append(rows, []string{"Total", formatNumber(events), "", "", "", report.Total.String(), ""})

	if err := renderTable(os.Stdout, header, rows); err != nil {
		return err
	}

	if report.Label != nil {
		fmt.Printf("\nData label: %s\n", report.Label.Label)
	}
	if report.Mood != nil {
		fmt.Printf("Data mood:  %s\n", report.Mood.Label)
	}
	return nil
}
