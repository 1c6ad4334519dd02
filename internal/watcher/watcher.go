// Package watcher turns a drop folder into a receipt printer: every zip
// archive that lands in the folder gets a text receipt written beside it.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/takeout"
	"golang.org/x/sync/errgroup"
)

// ReceiptSuffix replaces the archive extension in receipt file names.
const ReceiptSuffix = ".receipt.txt"

// DefaultSettle is how long an archive must stay unchanged before it is
// read. Browsers and copy tools write large archives in many chunks.
const DefaultSettle = 2 * time.Second

// Config describes one watched folder.
type Config struct {
	Dir string
	// OutputDir receives receipts; empty means Dir.
	OutputDir string
	Settle    time.Duration
	Options   pipeline.Options
	// Scan processes archives already in Dir on startup.
	Scan bool
}

// Watcher watches a folder for Takeout archives.
type Watcher struct {
	cfg    Config
	runner *pipeline.Runner
	logger logging.Logger

	mu      sync.Mutex
	seq     int
	pending map[string]int
	ready   chan string
}

// New validates cfg and creates the output folder if needed.
func New(cfg Config, runner *pipeline.Runner, logger logging.Logger) (*Watcher, error) {
	if cfg.Dir == "" {
		return nil, errors.New("watch directory is required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch directory: %s is not a directory", cfg.Dir)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = cfg.Dir
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if runner == nil {
		runner = pipeline.NewRunner(logger, nil)
	}

	return &Watcher{
		cfg:     cfg,
		runner:  runner,
		logger:  logger.With(logging.String("dir", cfg.Dir)),
		pending: make(map[string]int),
		ready:   make(chan string),
	}, nil
}

// ReceiptPath is where the receipt for archive is written.
func (w *Watcher) ReceiptPath(archive string) string {
	base := filepath.Base(archive)
	return filepath.Join(w.cfg.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+ReceiptSuffix)
}

// Process generates the receipt for one archive.
func (w *Watcher) Process(ctx context.Context, archive string) error {
	bundle, err := takeout.Open(archive)
	if err != nil {
		return err
	}
	defer bundle.Close()

	report, err := w.runner.Run(ctx, bundle, w.cfg.Options)
	if err != nil {
		return err
	}
	if report.Missing != nil {
		w.logger.Warn(report.Missing.Error(), logging.String("archive", archive))
	}

	out := w.ReceiptPath(archive)
	if err := writeAtomic(out, []byte(report.Receipt)); err != nil {
		return fmt.Errorf("writing receipt: %w", err)
	}
	w.logger.Info("receipt written",
		logging.String("archive", archive),
		logging.String("receipt", out),
		logging.String("run_id", report.RunID))
	return nil
}

// Scan processes every archive in the folder whose receipt is missing or
// older than the archive.
func (w *Watcher) Scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.cfg.Dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", w.cfg.Dir, err)
	}
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.IsDir() || !isArchive(e.Name()) {
			continue
		}
		archive := filepath.Join(w.cfg.Dir, e.Name())
		if w.upToDate(archive) {
			continue
		}
		if err := w.Process(ctx, archive); err != nil {
			w.logger.Warn("skipping archive", logging.String("archive", archive), logging.Err(err))
		}
	}
	return nil
}

func (w *Watcher) upToDate(archive string) bool {
	src, err := os.Stat(archive)
	if err != nil {
		return false
	}
	dst, err := os.Stat(w.ReceiptPath(archive))
	if err != nil {
		return false
	}
	return !dst.ModTime().Before(src.ModTime())
}

// Run watches until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.cfg.Dir, err)
	}
	w.logger.Info("watching for archives", logging.String("output_dir", w.cfg.OutputDir))

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gCtx.Done():
				return nil
			case event, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if !isArchive(event.Name) {
					continue
				}
				if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
					w.schedule(gCtx, event.Name)
				}
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				w.logger.Warn("file watcher error", logging.Err(err))
			}
		}
	})

	g.Go(func() error {
		if w.cfg.Scan {
			if err := w.Scan(gCtx); err != nil && !errors.Is(err, context.Canceled) {
				w.logger.Warn("initial scan failed", logging.Err(err))
			}
		}
		for {
			select {
			case <-gCtx.Done():
				return nil
			case archive := <-w.ready:
				if err := w.Process(gCtx, archive); err != nil {
					w.logger.Warn("no receipt for archive", logging.String("archive", archive), logging.Err(err))
				}
			}
		}
	})

	return g.Wait()
}

// schedule queues archive once it has been quiet for the settle delay.
// Every new event for the same file restarts the delay.
func (w *Watcher) schedule(ctx context.Context, archive string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// seq never resets, so a stale timer cannot match a later schedule.
	w.seq++
	gen := w.seq
	w.pending[archive] = gen
	time.AfterFunc(w.cfg.Settle, func() {
		w.flush(ctx, archive, gen)
	})
}

func (w *Watcher) flush(ctx context.Context, archive string, gen int) {
	w.mu.Lock()
	if w.pending[archive] != gen {
		w.mu.Unlock()
		return
	}
	delete(w.pending, archive)
	w.mu.Unlock()

	select {
	case w.ready <- archive:
	case <-ctx.Done():
	}
}

func isArchive(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".zip")
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".kickback-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
