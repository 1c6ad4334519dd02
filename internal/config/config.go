package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/runnerr0/kickback/internal/activity"
	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/kickback/config.yaml"

// Config holds all kickback configuration.
type Config struct {
	Values  ValuesConfig  `yaml:"values"`
	Receipt ReceiptConfig `yaml:"receipt"`
	Server  ServerConfig  `yaml:"server"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ValuesConfig is the illustrative dollar value attributed to one event.
type ValuesConfig struct {
	Watch    float64 `yaml:"watch" validate:"gte=0,lte=1000"`
	Search   float64 `yaml:"search" validate:"gte=0,lte=1000"`
	Query    float64 `yaml:"query" validate:"gte=0,lte=1000"`
	Location float64 `yaml:"location" validate:"gte=0,lte=1000"`
}

type ReceiptConfig struct {
	TopK        int      `yaml:"top_k" validate:"min=1,max=50"`
	RecencyDays int      `yaml:"recency_days" validate:"min=0,max=36500"`
	NightHours  []int    `yaml:"night_hours" validate:"dive,min=0,max=23"`
	Include     []string `yaml:"include" validate:"dive,category"`
	Label       bool     `yaml:"label"`
	Mood        bool     `yaml:"mood"`
}

type ServerConfig struct {
	Host        string  `yaml:"host" validate:"required"`
	Port        int     `yaml:"port" validate:"min=1,max=65535"`
	MaxUploadMB int     `yaml:"max_upload_mb" validate:"min=1"`
	RateLimit   float64 `yaml:"rate_limit" validate:"gt=0"`
	RateBurst   int     `yaml:"rate_burst" validate:"min=1"`
}

type WatchConfig struct {
	Dir         string `yaml:"dir"`
	OutputDir   string `yaml:"output_dir"`
	ServiceName string `yaml:"service_name" validate:"required"`
}

type LoggingConfig struct {
	Level       string   `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool     `yaml:"development"`
	OutputPaths []string `yaml:"output_paths"`
}

// UnitValue returns the configured value for one event of category c.
func (v ValuesConfig) UnitValue(c activity.Category) float64 {
	switch c {
	case activity.Watch:
		return v.Watch
	case activity.Search:
		return v.Search
	case activity.Query:
		return v.Query
	case activity.Location:
		return v.Location
	default:
		return 0
	}
}

// Set overrides the value for category c.
func (v *ValuesConfig) Set(c activity.Category, value float64) {
	switch c {
	case activity.Watch:
		v.Watch = value
	case activity.Search:
		v.Search = value
	case activity.Query:
		v.Query = value
	case activity.Location:
		v.Location = value
	}
}

// Categories returns the included categories in receipt order. Include
// is validated on load, so unknown names cannot reach here.
func (r ReceiptConfig) Categories() []activity.Category {
	cats, err := activity.ParseCategories(r.Include)
	if err != nil || len(cats) == 0 {
		return activity.Categories()
	}
	return cats
}

// Load reads a YAML config file at path, merges it with defaults, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDefault returns defaults with environment overrides, for runs
// without a config file.
func LoadDefault() (*Config, error) {
	cfg := DefaultConfig()
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// Resolve loads path when given. Otherwise the default path is used if it
// exists, and built-in defaults if it does not.
func Resolve(path string) (*Config, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, err
		}
		return Load(expanded)
	}

	def, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return LoadDefault()
	}
	if _, err := os.Stat(def); err == nil {
		return Load(def)
	}
	return LoadDefault()
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		if err := WriteFile(path, cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	}

	return Load(path)
}

// WriteFile marshals cfg as YAML to path, creating parent directories.
func WriteFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
