// Package handlers provides the HTTP handlers for the Lenslog API.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/response"
)

// Searcher is the catalog search surface handlers depend on.
type Searcher interface {
	Search(ctx context.Context, opts catalog.SearchOptions) ([]catalog.Photo, error)
}

// StatsHandler serves the archive statistics payload.
type StatsHandler struct {
	catalog   Searcher
	engine    *analytics.Engine
	batchSize int
	logger    *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(cat Searcher, engine *analytics.Engine, batchSize int, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{
		catalog:   cat,
		engine:    engine,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Get handles GET /api/v1/stats.
// A catalog failure is a request-level failure: the engine never runs
// on a silently truncated batch.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	photos, err := h.catalog.Search(r.Context(), catalog.SearchOptions{
		MaxResults:    h.batchSize,
		OnlyPhotoblog: true,
		IncludeTags:   true,
	})
	if err != nil {
		h.logger.Error("catalog search failed", slog.Any("error", err))
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	payload, err := h.engine.Compute(r.Context(), analytics.FilterScreenshots(photos))
	if err != nil {
		h.logger.Error("analytics computation failed", slog.Any("error", err))
		response.InternalError(w)
		return
	}

	response.OK(w, payload)
}
