// Package config provides configuration management for the API server.
// All configuration is loaded from environment variables with sensible defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the API server.
type Config struct {
	// Server
	Port            int
	ShutdownTimeout time.Duration

	// Photo catalog (search + tag management)
	CatalogBaseURL   string
	CatalogCloudName string
	CatalogAPIKey    string
	CatalogAPISecret string
	CatalogTimeout   time.Duration

	// Batch sizes per endpoint. The catalog caps a single call at 500;
	// larger values are satisfied by paging.
	StatsBatchSize    int
	CalendarBatchSize int
	FeedBatchSize     int

	// Metadata extractor
	ExtractorRateLimit float64 // requests per second, shared quota
	ExtractorBurst     int
	ExtractorTimeout   time.Duration
	EnrichConcurrency  int
	ExifCacheTTL       time.Duration

	// Database (mirror store)
	DatabaseURL    string
	MigrationsPath string

	// Redis (EXIF cache); empty disables caching
	RedisURL string

	// RSS feed
	FeedTitle   string
	FeedSiteURL string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		Port:            getEnvInt("API_PORT", 9833),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SEC", 30)) * time.Second,

		// Catalog
		CatalogBaseURL:   getEnvString("CATALOG_BASE_URL", "https://api.cloudinary.com"),
		CatalogCloudName: os.Getenv("CATALOG_CLOUD_NAME"),
		CatalogAPIKey:    os.Getenv("CATALOG_API_KEY"),
		CatalogAPISecret: os.Getenv("CATALOG_API_SECRET"),
		CatalogTimeout:   time.Duration(getEnvInt("CATALOG_TIMEOUT_SEC", 30)) * time.Second,

		// Batch sizes
		StatsBatchSize:    getEnvInt("STATS_BATCH_SIZE", 1000),
		CalendarBatchSize: getEnvInt("CALENDAR_BATCH_SIZE", 5000),
		FeedBatchSize:     getEnvInt("FEED_BATCH_SIZE", 24),

		// Extractor
		ExtractorRateLimit: getEnvFloat("EXTRACTOR_RATE_LIMIT", 10),
		ExtractorBurst:     getEnvInt("EXTRACTOR_BURST", 20),
		ExtractorTimeout:   time.Duration(getEnvInt("EXTRACTOR_TIMEOUT_SEC", 15)) * time.Second,
		EnrichConcurrency:  getEnvInt("ENRICH_CONCURRENCY", 20),
		ExifCacheTTL:       time.Duration(getEnvInt("EXIF_CACHE_TTL_HOURS", 24)) * time.Hour,

		// Database
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getEnvString("MIGRATIONS_PATH", "migrations"),

		// Redis
		RedisURL: os.Getenv("REDIS_URL"),

		// Feed
		FeedTitle:   getEnvString("FEED_TITLE", "Photo Archive"),
		FeedSiteURL: getEnvString("FEED_SITE_URL", "http://localhost:9833"),

		// Logging
		LogLevel:  getEnvString("LOG_LEVEL", "info"),
		LogFormat: getEnvString("LOG_FORMAT", "text"),
	}

	// Validate required fields
	if cfg.CatalogCloudName == "" {
		return nil, fmt.Errorf("CATALOG_CLOUD_NAME is required")
	}
	if cfg.CatalogAPIKey == "" || cfg.CatalogAPISecret == "" {
		return nil, fmt.Errorf("CATALOG_API_KEY and CATALOG_API_SECRET are required")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

// getEnvString returns environment variable or default value.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvInt returns environment variable as int or default value.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvFloat returns environment variable as float64 or default value.
func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
