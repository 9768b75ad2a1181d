package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"wedding-marketplace/internal/catalog"
	"wedding-marketplace/internal/catalog/cache"
	cataloghttp "wedding-marketplace/internal/catalog/http"
	"wedding-marketplace/internal/catalog/messaging"
	"wedding-marketplace/internal/catalog/repository"
	"wedding-marketplace/internal/catalog/service"
	"wedding-marketplace/internal/config"
	"wedding-marketplace/internal/logger"

	_ "wedding-marketplace/docs"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

const (
	migrateSourcePrefix = "file://"
	postgresDriverName  = "postgres"
)

// @title        Wedding Marketplace API
// @version      1.0
// @description  Vendor listings, search and WhatsApp contact hand-off for a wedding marketplace.
// @host         localhost:8080
// @BasePath     /
func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadMarketplace()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("load config", "error", err)
		os.Exit(1)
	}

	log := logger.Setup(cfg.LogLevel)
	os.Exit(run(cfg, log))
}

func run(cfg config.Marketplace, log *slog.Logger) int {
	if err := runMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Error("run migrations", "error", err)
		return 1
	}

	db, err := sql.Open(postgresDriverName, cfg.DatabaseURL)
	if err != nil {
		log.Error("open database", "error", err)
		return 1
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Error("ping database", "error", err)
		return 1
	}

	rabbitConn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Error("connect rabbitmq", "error", err)
		return 1
	}
	defer rabbitConn.Close()

	publisher, err := messaging.NewRabbitPublisher(rabbitConn, catalog.EventsQueue)
	if err != nil {
		log.Error("init publisher", "error", err)
		return 1
	}
	defer publisher.Close()

	repo := repository.NewPostgres(db)
	checkers := []cataloghttp.HealthChecker{repo}

	var searchCache cache.Client[catalog.SearchResult]
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		redisCache := cache.NewRedisClient[catalog.SearchResult](rdb)
		redisCtx, redisCancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
		defer redisCancel()
		if err := redisCache.Health(redisCtx); err != nil {
			log.Error("ping redis", "error", err)
			return 1
		}
		checkers = append(checkers, cataloghttp.HealthFunc(func() error {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.DBPingTimeout)
			defer cancel()
			return redisCache.Health(ctx)
		}))
		searchCache = redisCache
	} else {
		memCache := cache.NewInMemoryClient[catalog.SearchResult]()
		defer memCache.Close()
		log.Warn("REDIS_ADDR not set, using in-process search cache")
		searchCache = memCache
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := service.NewMetrics(registry)

	svc := service.New(repo, publisher, searchCache, log, metrics, service.Options{
		PageSize:        cfg.SearchPageSize,
		CacheTTL:        cfg.SearchCacheTTL,
		ViewDelay:       cfg.ViewTrackDelay,
		ViewTimeout:     cfg.ViewTrackTimeout,
		InvalidateDelay: cfg.CacheInvalidateDelay,
	})
	defer svc.Close()

	handler := cataloghttp.NewHandler(svc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cataloghttp.RequestIDMiddleware())
	router.Use(cataloghttp.AccessLogMiddleware(log))
	cataloghttp.RegisterRoutes(router, handler, registry, checkers...)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("marketplace service started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return 1
	}
	log.Info("marketplace service stopped")
	return 0
}

func runMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New(migrateSourcePrefix+migrationsPath, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
