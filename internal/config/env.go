package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// loadDotEnv loads .env.local then .env from the working directory. Values
// already present in the environment win, and missing files are fine.
func loadDotEnv() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// applyEnv overlays KICKBACK_* environment variables onto cfg.
func applyEnv(cfg *Config) error {
	if err := loadDotEnv(); err != nil {
		return err
	}

	if v := os.Getenv("KICKBACK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("KICKBACK_HOST"); v != "" {
		cfg.Server.Host = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"KICKBACK_PORT", &cfg.Server.Port},
		{"KICKBACK_TOP_K", &cfg.Receipt.TopK},
		{"KICKBACK_RECENCY_DAYS", &cfg.Receipt.RecencyDays},
	}
	for _, e := range ints {
		v := os.Getenv(e.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}
