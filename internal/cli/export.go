package cli

import (
	"context"
	"fmt"

	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/export"
	"github.com/runnerr0/kickback/internal/logging"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
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
func (c *ExportCommand) executeWith(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	opts, err := runOptions(cfg, c.RunFlags)
	if err != nil {
		return err
	}

	report, err := buildReport(ctx, c.Args.Paths, opts, logger)
	if err != nil {
		return err
	}

	if err := export.WriteFile(c.Output, report); err != nil {
		return err
	}
	logger.Info("spreadsheet written", logging.String("path", c.Output), logging.String("run_id", report.RunID))
	fmt.Printf("Spreadsheet written to %s\n", c.Output)
	return nil
}
