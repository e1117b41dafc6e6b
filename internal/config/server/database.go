package server

const DatabaseTypeSQLite = "sqlite"

// DatabaseServerConfig holds the portal store configuration
type DatabaseServerConfig struct {
	Type         string               `mapstructure:"type"           yaml:"type"`
	MaxOpenConns int                  `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	SQLite       DatabaseSQLiteConfig `mapstructure:"sqlite"         yaml:"sqlite"`
}

// DatabaseSQLiteConfig holds SQLite-specific configuration
type DatabaseSQLiteConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}
