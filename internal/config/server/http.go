package server

type HTTPServerConfig struct {
	Address string               `mapstructure:"address" yaml:"address"`
	CORS    HTTPServerCORSConfig `mapstructure:"cors"    yaml:"cors"`
}

type HTTPServerCORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}
