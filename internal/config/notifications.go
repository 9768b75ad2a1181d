package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Notifications struct {
	RabbitMQURL     string        `env:"RABBITMQ_URL"`
	Queue           string        `env:"EVENTS_QUEUE"     envDefault:"marketplace.events"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"info"`
	Prefetch        int           `env:"PREFETCH"         envDefault:"10"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func LoadNotifications() (Notifications, error) {
	var cfg Notifications
	if err := env.Parse(&cfg); err != nil {
		return Notifications{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RabbitMQURL == "" {
		return Notifications{}, errRabbitMQURLRequired
	}

	return cfg, nil
}
