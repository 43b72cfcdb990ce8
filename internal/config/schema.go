package config

// Config holds userboard configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Server     ServerCfg     `mapstructure:"server" yaml:"server"`
	Database   DatabaseCfg   `mapstructure:"database" yaml:"database"`
	Pagination PaginationCfg `mapstructure:"pagination" yaml:"pagination"`
	LogLevel   string        `mapstructure:"log_level" yaml:"log_level"` // debug, info, warn, error
}

// ServerCfg configures the HTTP server.
type ServerCfg struct {
	Host       string `mapstructure:"host" yaml:"host"`
	Port       string `mapstructure:"port" yaml:"port"`
	CORSOrigin string `mapstructure:"cors_origin" yaml:"cors_origin"` // Access-Control-Allow-Origin, empty disables
}

// DatabaseCfg configures the SQLite database.
type DatabaseCfg struct {
	// Path to the database file. Supports ${ENV_VAR} syntax.
	// Empty means {home}/userboard.db.
	Path string `mapstructure:"path" yaml:"path"`
}

// PaginationCfg holds the startup pagination defaults.
// The settings store overrides these at runtime.
type PaginationCfg struct {
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
	Radius   int `mapstructure:"radius" yaml:"radius"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host:       "127.0.0.1",
			Port:       "8080",
			CORSOrigin: "*",
		},
		Pagination: PaginationCfg{
			PageSize: DefaultPageSize,
			Radius:   DefaultRadius,
		},
		LogLevel: "info",
	}
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// DatabasePath returns the configured database path with env vars resolved,
// or fallback when none is configured.
func (c *Config) DatabasePath(fallback string) string {
	if p := ResolveEnvVars(c.Database.Path); p != "" {
		return p
	}
	return fallback
}
