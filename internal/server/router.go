// Package server provides HTTP routing configuration for the Lenslog API.
// All API routes are versioned under /api/v1/ for future compatibility.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/config"
	"github.com/ejfox/photos/internal/handlers"
	"github.com/ejfox/photos/internal/metrics"
	"github.com/ejfox/photos/internal/storage"
)

// Dependencies holds all handler dependencies.
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	Catalog *catalog.Client
	Engine  *analytics.Engine
	Store   *storage.Store
	Metrics *metrics.Metrics
}

// NewRouter creates and configures the HTTP router with all routes.
func NewRouter(deps *Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(Recovery(deps.Logger))
	r.Use(RequestID)
	r.Use(Logger(deps.Logger))
	r.Use(CORS)

	// Health check and metrics
	r.Get("/health", handlers.Health(deps.Store))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Create handlers
	statsHandler := handlers.NewStatsHandler(deps.Catalog, deps.Engine, deps.Config.StatsBatchSize, deps.Logger)
	calendarHandler := handlers.NewCalendarHandler(deps.Catalog, deps.Config.CalendarBatchSize, deps.Logger)
	archiveHandler := handlers.NewArchiveHandler(deps.Catalog, deps.Config.CalendarBatchSize, deps.Logger)
	photosHandler := handlers.NewPhotosHandler(deps.Catalog, deps.Logger)
	latestHandler := handlers.NewLatestHandler(deps.Catalog, deps.Store, deps.Metrics, deps.Logger)
	feedHandler := handlers.NewFeedHandler(deps.Catalog, deps.Config.FeedTitle, deps.Config.FeedSiteURL, deps.Config.FeedBatchSize, deps.Logger)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Analytics
		r.Get("/stats", statsHandler.Get)
		r.Get("/calendar", calendarHandler.Get)
		r.Get("/archive", archiveHandler.Get)

		// Photos
		r.Get("/photos", photosHandler.List)
		r.Get("/photos/latest", latestHandler.Get)
		r.Patch("/photos/{id}", photosHandler.Update)
		r.Post("/photos/{id}/tags", photosHandler.AddTag)
		r.Delete("/photos/{id}/tags/{tag}", photosHandler.RemoveTag)
	})

	// RSS feed
	r.Get("/rss.xml", feedHandler.Get)

	return r
}
