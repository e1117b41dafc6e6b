package server

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type BaseServerConfig struct {
	ShutdownTimeout string `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	Log      LogServerConfig      `mapstructure:"log"      yaml:"log"`
	Database DatabaseServerConfig `mapstructure:"database" yaml:"database"`
	HTTP     HTTPServerConfig     `mapstructure:"http"     yaml:"http"`
	Table    TableServerConfig    `mapstructure:"table"    yaml:"table"`
}

func LoadServerConfig() (*BaseServerConfig, error) {
	cfg := &BaseServerConfig{}

	setDefaults()

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate rejects values the agent cannot start with.
func (cfg *BaseServerConfig) Validate() error {
	if cfg.Database.Type != DatabaseTypeSQLite {
		return fmt.Errorf("unsupported database type '%s'", cfg.Database.Type)
	}
	if cfg.Database.SQLite.Path == "" {
		return fmt.Errorf("database.sqlite.path must not be empty")
	}
	if cfg.Table.ItemsPerPage <= 0 {
		return fmt.Errorf("table.items_per_page must be positive, got %d", cfg.Table.ItemsPerPage)
	}
	return nil
}

// Shutdown returns the graceful shutdown timeout, 60 seconds when unset or
// invalid.
func (cfg *BaseServerConfig) Shutdown() time.Duration {
	return parseDuration(cfg.ShutdownTimeout, "60s")
}
