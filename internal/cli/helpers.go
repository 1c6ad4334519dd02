package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/runnerr0/kickback/internal/activity"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/takeout"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	defaultLogLevel = "warn"
	lastYearDays    = 365
)

var printer = message.NewPrinter(language.English)

// loadConfig resolves --config, the default config file, or built-in defaults.
func loadConfig(g *GlobalFlags) (*config.Config, error) {
	path := ""
	if g != nil {
		path = g.Config
	}
	cfg, err := config.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the stderr logger. Long-running commands log at info
// unless the config asks for a level other than the default.
func newLogger(cfg *config.Config, g *GlobalFlags, longRunning bool) (logging.Logger, error) {
	level := cfg.Logging.Level
	if longRunning && level == defaultLogLevel {
		level = "info"
	}
	if g != nil && g.Verbose {
		level = "debug"
	}
	return logging.New(logging.Config{
		Level:       level,
		Development: cfg.Logging.Development,
		OutputPaths: cfg.Logging.OutputPaths,
	})
}

// setup loads config and a logger for a command.
func setup(g *GlobalFlags, longRunning bool) (*config.Config, logging.Logger, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg, g, longRunning)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runOptions applies command-line flags over the configured defaults.
func runOptions(cfg *config.Config, f RunFlags) (pipeline.Options, error) {
	opts := pipeline.OptionsFromConfig(cfg)

	if include := splitList(f.Include); len(include) > 0 {
		cats, err := activity.ParseCategories(include)
		if err != nil {
			return opts, err
		}
		opts.Categories = cats
		opts.Explicit = true
	}

	if f.TopK != 0 {
		if f.TopK < 1 {
			return opts, fmt.Errorf("--top-k must be at least 1, got %d", f.TopK)
		}
		opts.TopK = f.TopK
	}

	switch {
	case f.Since != "" && f.LastYear:
		return opts, errors.New("use either --since or --last-year, not both")
	case f.LastYear:
		opts.RecencyDays = lastYearDays
	case f.Since != "":
		d, err := parseDuration(f.Since)
		if err != nil {
			return opts, err
		}
		if d <= 0 {
			return opts, fmt.Errorf("invalid duration: %q", f.Since)
		}
		opts.RecencyDays = int(math.Ceil(d.Hours() / 24))
	}

	for _, v := range f.Values {
		c, amount, err := parseValue(v)
		if err != nil {
			return opts, err
		}
		opts.Values.Set(c, amount)
	}

	if f.Mood {
		opts.Mood = true
	}
	if f.NoLabel {
		opts.Label = false
	}
	return opts, nil
}

// buildReport locates activity files in paths and runs the pipeline.
// Missing requested categories are reported on stderr and do not fail
// the run.
func buildReport(ctx context.Context, paths []string, opts pipeline.Options, logger logging.Logger) (*pipeline.Report, error) {
	bundle, err := takeout.Open(paths...)
	if err != nil {
		return nil, err
	}
	defer bundle.Close()

	for _, e := range bundle.Entries {
		logger.Debug("located activity file",
			logging.String("file", e.Name),
			logging.String("category", string(e.Category)),
			logging.Bool("selected", e.Selected))
	}

	report, err := pipeline.NewRunner(logger, nil).Run(ctx, bundle, opts)
	if err != nil {
		return nil, err
	}
	if report.Missing != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", report.Missing)
	}
	return report, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// splitList flattens repeated and comma-separated flag values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// parseValue parses a "category=dollars" unit value override.
func parseValue(s string) (activity.Category, float64, error) {
	name, amount, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("invalid value %q: want category=dollars", s)
	}
	c, err := activity.ParseCategory(name)
	if err != nil {
		return "", 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return "", 0, fmt.Errorf("invalid value %q: dollars must be a non-negative number", s)
	}
	return c, v, nil
}

// parseDuration parses a human-friendly duration string like "30d", "7d", "24h", "2w".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, fmt.Errorf("invalid duration: empty string")
	}

	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %q", s)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration: %q (use d, h, w, or m suffix)", s)
	}
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatNumber formats n with thousands separators.
func formatNumber(n int) string {
	return printer.Sprintf("%d", n)
}
