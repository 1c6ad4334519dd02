package config

import "github.com/runnerr0/kickback/internal/summary"

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Values: ValuesConfig{
			Watch:    0.08,
			Search:   0.03,
			Query:    0.03,
			Location: 0.01,
		},
		Receipt: ReceiptConfig{
			TopK:        summary.DefaultTopK,
			RecencyDays: 0,
			NightHours:  summary.DefaultNightHours(),
			Include:     []string{"watch", "search", "query", "location"},
			Label:       true,
			Mood:        false,
		},
		Server: ServerConfig{
			Host:        "127.0.0.1",
			Port:        8425,
			MaxUploadMB: 512,
			RateLimit:   0.5,
			RateBurst:   5,
		},
		Watch: WatchConfig{
			Dir:         "~/Downloads/takeout",
			OutputDir:   "",
			ServiceName: "kickback-watch",
		},
		Logging: LoggingConfig{
			Level:       "warn",
			Development: false,
			OutputPaths: []string{},
		},
	}
}
