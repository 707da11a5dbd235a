package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Realtime RealtimeConfig `mapstructure:"realtime"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// AllowedOrigins lists the browser origins permitted by CORS. Credentials are always allowed.
	AllowedOrigins        []string `mapstructure:"allowed_origins"         validate:"required,min=1,dive,required"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"gte=1"`
}

// Database drivers understood by the server.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a postgres connection string or, for sqlite, a file path.
	URL          string `mapstructure:"url"            validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
}

// RedisConfig enables cross-instance change broadcasting when URL is set.
type RedisConfig struct {
	URL     string `mapstructure:"url"     validate:"omitempty,url"`
	Channel string `mapstructure:"channel" validate:"required"`
}

// Enabled reports whether change events should travel through Redis.
func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

// RealtimeConfig tunes the websocket change channel.
type RealtimeConfig struct {
	// BufferSize is the number of events queued per subscriber before new ones are dropped.
	BufferSize int `mapstructure:"buffer_size" validate:"gte=1"`
}
