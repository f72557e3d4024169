// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable; nested groups share a prefix (DB_, REDIS_,
// RATE_LIMIT_, CACHE_).
type Config struct {
	Env       string `env:"APP_ENV" envDefault:"dev"`                      // application environment (dev, test, prod)
	Port      string `env:"APP_PORT" envDefault:"8080"`                    // HTTP port to listen on
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"` // allowed CORS origin

	DB        DBConfig        `envPrefix:"DB_"`
	Redis     RedisConfig     `envPrefix:"REDIS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	Cache     CacheConfig     `envPrefix:"CACHE_"`

	// RabbitMQURL enables the durable slot_booked audit stream when set.
	RabbitMQURL     string `env:"RABBITMQ_URL"`
	SlotBookedQueue string `env:"SLOT_BOOKED_QUEUE" envDefault:"booking.slot_booked"`
	AuditLogDir     string `env:"AUDIT_LOG_DIR" envDefault:"logs"`

	EventsChannel    string        `env:"EVENTS_REDIS_CHANNEL" envDefault:"slot_booked"`
	PublishTimeout   time.Duration `env:"EVENT_PUBLISH_TIMEOUT" envDefault:"3s"`
	SSEHeartbeat     time.Duration `env:"SSE_HEARTBEAT" envDefault:"25s"`
	SubscriberBuffer int           `env:"SUBSCRIBER_BUFFER" envDefault:"16"`

	// OperatorJWTSecret protects status updates when non-empty.
	OperatorJWTSecret string        `env:"OPERATOR_JWT_SECRET"`
	OperatorTokenTTL  time.Duration `env:"OPERATOR_TOKEN_TTL" envDefault:"12h"`
}

// DBConfig selects and addresses the reservation database. Driver is one of
// mysql, postgres or sqlite; Path is only used by sqlite.
type DBConfig struct {
	Driver  string `env:"DRIVER" envDefault:"mysql"`
	User    string `env:"USER"`
	Pass    string `env:"PASS"`
	Host    string `env:"HOST" envDefault:"localhost"`
	Port    string `env:"PORT"`
	Name    string `env:"NAME" envDefault:"expert_booking"`
	SSLMode string `env:"SSL_MODE" envDefault:"disable"`
	Path    string `env:"PATH" envDefault:"data/booking.db"`
}

// Load reads an optional .env file, parses the environment into a Config,
// normalizes the rate limit and cache groups and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.RateLimit = cfg.RateLimit.normalize()
	cfg.Cache = cfg.Cache.normalize()
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 3 * time.Second
	}
	if cfg.SSEHeartbeat <= 0 {
		cfg.SSEHeartbeat = 25 * time.Second
	}
	if cfg.SubscriberBuffer < 1 {
		cfg.SubscriberBuffer = 1
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate enforces the variables each database driver requires.
func (c Config) Validate() error {
	var missing []string
	require := func(key, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, key)
		}
	}
	switch c.DB.Driver {
	case "mysql", "postgres":
		require("DB_USER", c.DB.User)
		require("DB_HOST", c.DB.Host)
		require("DB_PORT", c.DB.Port)
		require("DB_NAME", c.DB.Name)
	case "sqlite":
		require("DB_PATH", c.DB.Path)
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql, postgres or sqlite)", c.DB.Driver)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	return nil
}
