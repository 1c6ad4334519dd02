package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/kickback/internal/config"
	"gopkg.in/yaml.v3"
)

// Execute implements the go-flags Commander interface for ConfigCommand.
func (c *ConfigCommand) Execute(args []string) error {
	path := config.DefaultConfigPath
	if c.globals != nil && c.globals.Config != "" {
		path = c.globals.Config
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return err
	}
	return c.executeWith(expanded)
}

// executeWith runs the command against an explicit config path (for testing).
func (c *ConfigCommand) executeWith(path string) error {
	if c.Path {
		fmt.Println(path)
		return nil
	}

	if c.Init {
		_, statErr := os.Stat(path)
		if _, err := config.LoadOrCreateAt(path); err != nil {
			return err
		}
		if os.IsNotExist(statErr) {
			fmt.Printf("Config written to %s\n", path)
		} else {
			fmt.Printf("Config already exists at %s\n", path)
		}
		return nil
	}

	var cfg *config.Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
	} else {
		cfg, err = config.LoadDefault()
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "# %s not found; showing defaults\n", path)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}
