package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
)

// Execute implements the go-flags Commander interface for ReceiptCommand.
func (c *ReceiptCommand) Execute(args []string) error {
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
func (c *ReceiptCommand) executeWith(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	opts, err := runOptions(cfg, c.RunFlags)
	if err != nil {
		return err
	}

	report, err := buildReport(ctx, c.Args.Paths, opts, logger)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		return printJSON(os.Stdout, report.JSON())
	}

	if c.Output != "" {
		if err := os.WriteFile(c.Output, []byte(report.Receipt), 0644); err != nil {
			return fmt.Errorf("write receipt: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Receipt written to %s\n", c.Output)
		return nil
	}

	fmt.Print(colorize(report, useColors(c.Color)))
	return nil
}
