package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wedding-marketplace/internal/config"
	"wedding-marketplace/internal/logger"
	"wedding-marketplace/internal/notifications"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadNotifications()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load config", "error", err)
		os.Exit(1)
	}

	os.Exit(run(cfg, logger.Setup(cfg.LogLevel)))
}

func run(cfg config.Notifications, log *slog.Logger) int {
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Error("connect rabbitmq", "error", err)
		return 1
	}
	defer conn.Close()

	consumer, err := notifications.NewConsumer(conn, cfg.Queue, cfg.Prefetch, log)
	if err != nil {
		log.Error("init consumer", "error", err)
		return 1
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("notifications service started", "queue", cfg.Queue)
		errCh <- consumer.Listen(ctx)
	}()

	waitForDrain := false
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		waitForDrain = true
	case err := <-errCh:
		if err != nil {
			log.Error("consumer failed", "error", err)
			return 1
		}
	}

	if waitForDrain {
		shutdownDeadline := time.NewTimer(cfg.ShutdownTimeout)
		defer shutdownDeadline.Stop()
		select {
		case err := <-errCh:
			if err != nil {
				log.Error("consumer stop failed", "error", err)
				return 1
			}
		case <-shutdownDeadline.C:
			log.Warn("consumer shutdown timeout reached")
		}
	}

	log.Info("notifications service stopped")
	return 0
}
