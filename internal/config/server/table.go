package server

import "time"

// TableServerConfig controls the defaults of every datatable session.
type TableServerConfig struct {
	ItemsPerPage  int    `mapstructure:"items_per_page" yaml:"items_per_page"`
	DateField     string `mapstructure:"date_field"     yaml:"date_field"`
	SessionTTL    string `mapstructure:"session_ttl"    yaml:"session_ttl"`
	SweepInterval string `mapstructure:"sweep_interval" yaml:"sweep_interval"`
}

// TTL returns how long an idle session is kept. Invalid values fall back to
// the default.
func (cfg TableServerConfig) TTL() time.Duration {
	return parseDuration(cfg.SessionTTL, GetServerDefault().Table.SessionTTL)
}

func (cfg TableServerConfig) Sweep() time.Duration {
	return parseDuration(cfg.SweepInterval, GetServerDefault().Table.SweepInterval)
}

func parseDuration(value, fallback string) time.Duration {
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	d, _ := time.ParseDuration(fallback)
	return d
}
