// Package config loads the shell configuration from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config is the process-wide shell configuration, parsed once at startup.
type Config struct {
	DataDir        string `env:"NEURONOTES_DATA_DIR"`
	ProductionFile string `env:"NEURONOTES_DB_FILE" envDefault:"neuronotes.db"`
	DevFile        string `env:"NEURONOTES_DEV_DB_FILE" envDefault:"neuronotes_dev.db"`
	LogLevel       string `env:"NEURONOTES_LOG_LEVEL" envDefault:"info"`
	DevMode        bool   `env:"NEURONOTES_DEV" envDefault:"false"`
}

// Load parses the environment. When no data directory is set it defaults to
// a neuronotes directory under the platform user config dir.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "neuronotes")
	}
	return cfg, nil
}
