package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Default values for various configurations.
const (
	DefaultDataDir     = "/data" // Inside the container
	DefaultCtyFile     = "cty.dat"
	DefaultEntityCSV   = "dxcc_entity.csv"
	DefaultDatabaseSQL = "dxentity.db"
)

// Config holds all application configuration.
type Config struct {
	DataDir string `env:"DATA_DIR" envDefault:"/data"` // Directory for data + SQLite files

	// Data files. Relative paths are resolved against DataDir.
	CtyFile         string `env:"CTY_FILE" envDefault:"cty.dat"`
	EntityCSV       string `env:"DXCC_CSV" envDefault:"dxcc_entity.csv"`
	CustomAliasFile string `env:"CUSTOM_ALIASES"`

	// SQLite database file name (created inside DataDir).
	DatabaseFile string `env:"DATABASE_FILE" envDefault:"dxentity.db"`

	// Watch CTY_FILE / DXCC_CSV and rebuild the in-memory index on change.
	WatchFiles bool `env:"CTY_WATCH" envDefault:"false"`

	// Logging verbosity name (CRIT, ERROR, WARN, NOTICE, INFO, DEBUG).
	LogLevel string `env:"LOG_LEVEL" envDefault:"NOTICE"`
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	// Ensure DataDir exists (it's essential for SQLite and data files)
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", cfg.DataDir, err)
	}

	cfg.CtyFile = cfg.resolve(cfg.CtyFile)
	cfg.EntityCSV = cfg.resolve(cfg.EntityCSV)
	cfg.CustomAliasFile = cfg.resolve(cfg.CustomAliasFile)

	return cfg, nil
}

// resolve anchors a relative data-file path under DataDir.
func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}
