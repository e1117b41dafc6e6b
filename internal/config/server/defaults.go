package server

import "github.com/spf13/viper"

func GetServerDefault() BaseServerConfig {
	return BaseServerConfig{
		ShutdownTimeout: "10s",

		Log: LogServerConfig{
			Level:      "INFO",
			TimeFormat: "2006-01-02 15:04:05",
			File:       "",
			NoColor:    false,
			JSON:       false,
			NoTerminal: false,
			Rotation: LogServerRotationConfig{
				MaxSize:    128,
				MaxBackups: 5,
				MaxAge:     16,
				Compress:   false,
			},
		},

		Database: DatabaseServerConfig{
			Type:         DatabaseTypeSQLite,
			MaxOpenConns: 1,
			SQLite: DatabaseSQLiteConfig{
				Path: "govportal.db",
			},
		},

		HTTP: HTTPServerConfig{
			Address: "127.0.0.1:8080",
			CORS: HTTPServerCORSConfig{
				AllowedOrigins: []string{"*"},
			},
		},

		Table: TableServerConfig{
			ItemsPerPage:  25,
			DateField:     "start_date",
			SessionTTL:    "30m",
			SweepInterval: "1m",
		},
	}
}

func setDefaults() {
	defaults := GetServerDefault()

	viper.SetDefault("shutdown_timeout", defaults.ShutdownTimeout)

	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.time_format", defaults.Log.TimeFormat)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("log.no_color", defaults.Log.NoColor)
	viper.SetDefault("log.json", defaults.Log.JSON)
	viper.SetDefault("log.no_terminal", defaults.Log.NoTerminal)
	viper.SetDefault("log.rotation.max_size", defaults.Log.Rotation.MaxSize)
	viper.SetDefault("log.rotation.max_backups", defaults.Log.Rotation.MaxBackups)
	viper.SetDefault("log.rotation.max_age", defaults.Log.Rotation.MaxAge)
	viper.SetDefault("log.rotation.compress", defaults.Log.Rotation.Compress)

	viper.SetDefault("database.type", defaults.Database.Type)
	viper.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	viper.SetDefault("database.sqlite.path", defaults.Database.SQLite.Path)

	viper.SetDefault("http.address", defaults.HTTP.Address)
	viper.SetDefault("http.cors.allowed_origins", defaults.HTTP.CORS.AllowedOrigins)

	viper.SetDefault("table.items_per_page", defaults.Table.ItemsPerPage)
	viper.SetDefault("table.date_field", defaults.Table.DateField)
	viper.SetDefault("table.session_ttl", defaults.Table.SessionTTL)
	viper.SetDefault("table.sweep_interval", defaults.Table.SweepInterval)
}
