package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/response"
)

// CalendarHandler serves photos grouped by calendar day.
type CalendarHandler struct {
	catalog   Searcher
	batchSize int
	logger    *slog.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(cat Searcher, batchSize int, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{
		catalog:   cat,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Get handles GET /api/v1/calendar.
func (h *CalendarHandler) Get(w http.ResponseWriter, r *http.Request) {
	photos, err := h.catalog.Search(r.Context(), catalog.SearchOptions{
		MaxResults:    h.batchSize,
		OnlyPhotoblog: true,
	})
	if err != nil {
		h.logger.Error("catalog search failed", slog.Any("error", err))
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	response.OK(w, analytics.ByDay(photos))
}
