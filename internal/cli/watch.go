package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/kardianos/service"
	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/pipeline"
	"github.com/runnerr0/kickback/internal/watcher"
)

// Execute implements the go-flags Commander interface for WatchCommand.
func (c *WatchCommand) Execute(args []string) error {
	cfg, logger, err := setup(c.globals, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	wcfg, err := c.watchConfig(cfg)
	if err != nil {
		return err
	}
	// Managing an existing service does not need the folder to exist.
	w, err := watcher.New(wcfg, pipeline.NewRunner(logger, nil), logger)
	if err != nil && (c.Service == "" || c.Service == "install") {
		return err
	}

	svc, err := watcher.NewService(cfg.Watch.ServiceName, c.serviceArgs(wcfg), watcher.NewProgram(w))
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	if c.Service != "" {
		msg, err := watcher.Control(svc, c.Service)
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	}

	// Started by the service manager.
	if !service.Interactive() {
		return svc.Run()
	}

	ctx, stop := signalContext()
	defer stop()
	fmt.Printf("Watching %s for Takeout archives (Ctrl+C to stop)\n", wcfg.Dir)
	return w.Run(ctx)
}

// watchConfig resolves folders to absolute paths, so an installed service
// does not depend on its working directory.
func (c *WatchCommand) watchConfig(cfg *config.Config) (watcher.Config, error) {
	opts, err := runOptions(cfg, c.RunFlags)
	if err != nil {
		return watcher.Config{}, err
	}

	dir := c.Dir
	if dir == "" {
		dir = cfg.Watch.Dir
	}
	dir, err = absPath(dir)
	if err != nil {
		return watcher.Config{}, err
	}

	out := c.Output
	if out == "" {
		out = cfg.Watch.OutputDir
	}
	if out != "" {
		if out, err = absPath(out); err != nil {
			return watcher.Config{}, err
		}
	}

	return watcher.Config{Dir: dir, OutputDir: out, Options: opts, Scan: c.Scan}, nil
}

// serviceArgs is the command line an installed service runs with.
func (c *WatchCommand) serviceArgs(wcfg watcher.Config) []string {
	args := []string{"watch", "--dir", wcfg.Dir}
	if wcfg.OutputDir != "" && wcfg.OutputDir != wcfg.Dir {
		args = append(args, "--out", wcfg.OutputDir)
	}
	if c.Scan {
		args = append(args, "--scan")
	}
	if c.globals != nil && c.globals.Config != "" {
		if p, err := absPath(c.globals.Config); err == nil {
			args = append([]string{"--config", p}, args...)
		}
	}
	for _, inc := range c.Include {
		args = append(args, "--include", inc)
	}
	if c.TopK != 0 {
		args = append(args, "--top-k", strconv.Itoa(c.TopK))
	}
	if c.Since != "" {
		args = append(args, "--since", c.Since)
	}
	if c.LastYear {
		args = append(args, "--last-year")
	}
	for _, v := range c.Values {
		args = append(args, "--value", v)
	}
	if c.Mood {
		args = append(args, "--mood")
	}
	if c.NoLabel {
		args = append(args, "--no-label")
	}
	return args
}

func absPath(p string) (string, error) {
	expanded, err := config.ExpandPath(p)
	if err != nil {
		return "", err
	}
	return filepath.Abs(expanded)
}
