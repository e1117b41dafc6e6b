package store

import (
	"fmt"

	config "github.com/mwantia/govportal/internal/config/server"
)

// NewFromConfig creates the store selected by the database configuration.
func NewFromConfig(cfg config.DatabaseServerConfig) (*SQLiteStore, error) {
	switch cfg.Type {
	case config.DatabaseTypeSQLite:
		return NewSQLiteStore(SQLiteConfig{
			Path:         cfg.SQLite.Path,
			MaxOpenConns: cfg.MaxOpenConns,
		})
	default:
		return nil, fmt.Errorf("unsupported database type '%s'", cfg.Type)
	}
}
