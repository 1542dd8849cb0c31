package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the adventure server configuration.
type Config struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding     string        `envconfig:"LOG_ENCODING" default:"json"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_TIME" default:"5m"`
	// Loaded from the db_password secret.
	DBPassword string `ignored:"true"`

	// Redis holds the revoked token ids written by the auth service.
	RedisAddr string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`

	// Empty RabbitMQURL disables game events.
	RabbitMQURL     string `envconfig:"RABBITMQ_URL"`
	GameEventsQueue string `envconfig:"GAME_EVENTS_QUEUE" default:"game_events"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Per-player limit on gameplay writes, stored in Redis. 0 disables it.
	RateLimitPerMinute uint `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`

	// Loaded from the jwt_secret secret.
	JWTSecret string `ignored:"true"`
}

// GetDSN returns the PostgreSQL connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// SafeDSN is GetDSN with the password masked, for logs.
func (c *Config) SafeDSN() string {
	return fmt.Sprintf("postgres://%s:***@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// EventsEnabled reports whether a RabbitMQ URL is configured.
func (c *Config) EventsEnabled() bool {
	return c.RabbitMQURL != ""
}

// Load reads an optional .env file, the environment and the required secrets.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load adventure-server config: %w", err)
	}

	var err error
	if cfg.DBPassword, err = ReadSecret("db_password"); err != nil {
		return nil, err
	}
	if cfg.JWTSecret, err = ReadSecret("jwt_secret"); err != nil {
		return nil, err
	}
	return &cfg, nil
}
