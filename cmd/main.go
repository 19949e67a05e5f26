// Package main is the entry point for the Lenslog API server.
// It initializes all dependencies and starts the HTTP server with graceful shutdown.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/config"
	"github.com/ejfox/photos/internal/exif"
	"github.com/ejfox/photos/internal/metrics"
	"github.com/ejfox/photos/internal/server"
	"github.com/ejfox/photos/internal/storage"
)

func main() {
	logger := initLogger()

	logger.Info("starting Lenslog API server")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations, then open the mirror store
	if err := storage.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	store, err := storage.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to initialize storage", slog.Any("error", err))
		os.Exit(1)
	}
	defer store.Close()

	logger.Info("connected to database")

	// Optional metadata cache
	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("failed to parse redis URL", slog.Any("error", err))
			os.Exit(1)
		}
		cache = redis.NewClient(opts)
		if err := cache.Ping(ctx).Err(); err != nil {
			logger.Error("failed to ping redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer cache.Close()
		logger.Info("metadata cache enabled")
	} else {
		logger.Warn("REDIS_URL not set, metadata caching disabled")
	}

	m := metrics.New()

	// External collaborators: photo catalog and metadata extractor.
	// Both handles are constructed once here and shared.
	cat := catalog.New(catalog.Config{
		BaseURL:   cfg.CatalogBaseURL,
		CloudName: cfg.CatalogCloudName,
		APIKey:    cfg.CatalogAPIKey,
		APISecret: cfg.CatalogAPISecret,
		Timeout:   cfg.CatalogTimeout,
	}, m, logger)

	extractor := exif.NewClient(exif.ClientConfig{
		BaseURL:           cfg.CatalogBaseURL,
		CloudName:         cfg.CatalogCloudName,
		APIKey:            cfg.CatalogAPIKey,
		APISecret:         cfg.CatalogAPISecret,
		Timeout:           cfg.ExtractorTimeout,
		RequestsPerSecond: cfg.ExtractorRateLimit,
		Burst:             cfg.ExtractorBurst,
		CacheTTL:          cfg.ExifCacheTTL,
	}, cache, m, logger)

	engine := analytics.NewEngine(extractor, cfg.EnrichConcurrency, m, logger)

	deps := &server.Dependencies{
		Config:  cfg,
		Logger:  logger,
		Catalog: cat,
		Engine:  engine,
		Store:   store,
		Metrics: m,
	}
	router := server.NewRouter(deps)

	srv := server.New(cfg, router, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	logger.Info("server started",
		slog.Int("port", cfg.Port),
		slog.String("catalog", cfg.CatalogCloudName),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", slog.String("signal", sig.String()))

	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

// initLogger creates a structured logger based on environment.
func initLogger() *slog.Logger {
	logLevel := os.Getenv("LOG_LEVEL")
	logFormat := os.Getenv("LOG_FORMAT")

	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if logFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
