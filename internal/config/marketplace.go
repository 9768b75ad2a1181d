package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	errDatabaseURLRequired = errors.New("DATABASE_URL is required")
	errRabbitMQURLRequired = errors.New("RABBITMQ_URL is required")
)

// Marketplace configures the listings API. An empty RedisAddr selects the
// in-process search cache.
type Marketplace struct {
	DatabaseURL       string        `env:"DATABASE_URL"`
	RabbitMQURL       string        `env:"RABBITMQ_URL"`
	RedisAddr         string        `env:"REDIS_ADDR"`
	HTTPAddr          string        `env:"HTTP_ADDR"            envDefault:":8080"`
	MigrationsPath    string        `env:"MIGRATIONS_PATH"      envDefault:"migrations/marketplace"`
	LogLevel          string        `env:"LOG_LEVEL"            envDefault:"info"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"     envDefault:"10s"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS"    envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS"    envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBPingTimeout     time.Duration `env:"DB_PING_TIMEOUT"      envDefault:"5s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT"  envDefault:"5s"`

	SearchPageSize       int           `env:"SEARCH_PAGE_SIZE"       envDefault:"12"`
	SearchCacheTTL       time.Duration `env:"SEARCH_CACHE_TTL"       envDefault:"30s"`
	CacheInvalidateDelay time.Duration `env:"CACHE_INVALIDATE_DELAY" envDefault:"2s"`
	ViewTrackDelay       time.Duration `env:"VIEW_TRACK_DELAY"       envDefault:"1s"`
	ViewTrackTimeout     time.Duration `env:"VIEW_TRACK_TIMEOUT"     envDefault:"5s"`
}

func LoadMarketplace() (Marketplace, error) {
	var cfg Marketplace
	if err := env.Parse(&cfg); err != nil {
		return Marketplace{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return Marketplace{}, errDatabaseURLRequired
	}
	if cfg.RabbitMQURL == "" {
		return Marketplace{}, errRabbitMQURLRequired
	}

	return cfg, nil
}
