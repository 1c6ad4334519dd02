package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/kickback/internal/config"
	"github.com/runnerr0/kickback/internal/logging"
	"github.com/runnerr0/kickback/internal/server"
)

// Execute implements the go-flags Commander interface for ServeCommand.
func (c *ServeCommand) Execute(args []string) error {
	cfg, logger, err := setup(c.globals, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signalContext()
	defer stop()

	srv, err := c.newServer(cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "kickback %s serving on http://%s\n", c.version, srv.Addr())
	return srv.Run(ctx)
}

// newServer applies flag overrides to cfg and builds the server.
func (c *ServeCommand) newServer(cfg *config.Config, logger logging.Logger) (*server.Server, error) {
	if c.Host != "" {
		cfg.Server.Host = c.Host
	}
	if c.Port != 0 {
		if c.Port < 1 || c.Port > 65535 {
			return nil, fmt.Errorf("invalid port %d", c.Port)
		}
		cfg.Server.Port = c.Port
	}
	return server.New(cfg, logger)
}
