package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/response"
)

// ArchiveHandler serves the monthly photo archive.
type ArchiveHandler struct {
	catalog   Searcher
	batchSize int
	logger    *slog.Logger
}

// NewArchiveHandler creates a new ArchiveHandler.
func NewArchiveHandler(cat Searcher, batchSize int, logger *slog.Logger) *ArchiveHandler {
	return &ArchiveHandler{
		catalog:   cat,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Get handles GET /api/v1/archive?month=&year=.
func (h *ArchiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month and year are required parameters")
		return
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1 {
		response.BadRequest(w, "month and year are required parameters")
		return
	}

	photos, err := h.catalog.Search(r.Context(), catalog.SearchOptions{
		MaxResults:    h.batchSize,
		OnlyPhotoblog: true,
	})
	if err != nil {
		h.logger.Error("catalog search failed", slog.Any("error", err))
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	response.OK(w, analytics.ByMonth(photos, time.Month(month), year))
}
