package watcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kardianos/service"
)

const stopTimeout = 10 * time.Second

// Program runs a Watcher under the OS service manager.
type Program struct {
	watcher *Watcher
	cancel  context.CancelFunc
	done    chan error
}

// NewProgram wraps w for service.New.
func NewProgram(w *Watcher) *Program {
	return &Program{watcher: w}
}

func (p *Program) Start(s service.Service) error {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan error, 1)
	go func() {
		p.done <- p.watcher.Run(ctx)
	}()
	return nil
}

func (p *Program) Stop(s service.Service) error {
	if p.cancel == nil {
		return nil
	}
	p.cancel()
	select {
	case err := <-p.done:
		return err
	case <-time.After(stopTimeout):
		return errors.New("watcher did not stop in time")
	}
}

// NewService registers prog with the platform service manager. args are
// the command line the service runs with.
func NewService(name string, args []string, prog *Program) (service.Service, error) {
	return service.New(prog, &service.Config{
		Name:        name,
		DisplayName: "Kickback Watch",
		Description: "Writes a Kickback data receipt for every Takeout archive dropped into a folder",
		Arguments:   args,
	})
}

// Control performs a service action and returns a line for the user.
func Control(s service.Service, action string) (string, error) {
	switch action {
	case "install":
		if err := s.Install(); err != nil {
			return "", fmt.Errorf("installing service: %w", err)
		}
		if err := s.Start(); err != nil {
			return "", fmt.Errorf("service installed but failed to start: %w", err)
		}
		return "Service installed and started.", nil
	case "uninstall":
		_ = s.Stop()
		if err := s.Uninstall(); err != nil {
			return "", fmt.Errorf("uninstalling service: %w", err)
		}
		return "Service uninstalled.", nil
	case "start":
		if err := s.Start(); err != nil {
			return "", fmt.Errorf("starting service: %w", err)
		}
		return "Service started.", nil
	case "stop":
		if err := s.Stop(); err != nil {
			return "", fmt.Errorf("stopping service: %w", err)
		}
		return "Service stopped.", nil
	case "status":
		status, err := s.Status()
		if err != nil {
			return fmt.Sprintf("Service status: not installed (%v)", err), nil
		}
		switch status {
		case service.StatusRunning:
			return "Service status: running", nil
		case service.StatusStopped:
			return "Service status: stopped", nil
		default:
			return "Service status: unknown", nil
		}
	default:
		return "", fmt.Errorf("unknown service action %q (use install, uninstall, start, stop or status)", action)
	}
}
