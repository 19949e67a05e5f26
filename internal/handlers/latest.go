package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/metrics"
	"github.com/ejfox/photos/internal/response"
	"github.com/ejfox/photos/internal/storage"
)

// listLimit caps how many mirrored records one response returns.
const listLimit = 500

// IncrementalSearcher fetches catalog records newer than an instant.
type IncrementalSearcher interface {
	SearchCreatedAfter(ctx context.Context, after time.Time) ([]catalog.Photo, error)
}

// ImageMirror is the mirror-store surface the latest handler needs.
type ImageMirror interface {
	LatestServiceCreatedAt(ctx context.Context) (*time.Time, error)
	UpsertImages(ctx context.Context, images []storage.Image) error
	ListImages(ctx context.Context, limit int) ([]storage.Image, error)
}

// LatestHandler syncs new catalog records into the mirror store and
// serves the mirrored list.
type LatestHandler struct {
	catalog IncrementalSearcher
	mirror  ImageMirror
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLatestHandler creates a new LatestHandler.
func NewLatestHandler(cat IncrementalSearcher, mirror ImageMirror, m *metrics.Metrics, logger *slog.Logger) *LatestHandler {
	return &LatestHandler{
		catalog: cat,
		mirror:  mirror,
		metrics: m,
		logger:  logger,
	}
}

// Get handles GET /api/v1/photos/latest.
// It pulls catalog records created after the mirror's high-water mark,
// upserts them, and returns the mirror contents newest first. A failed
// sync still serves the existing mirror: stale data beats no data here.
func (h *LatestHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	since := time.Unix(0, 0)
	if latest, err := h.mirror.LatestServiceCreatedAt(ctx); err != nil {
		h.logger.Error("high-water mark lookup failed", slog.Any("error", err))
		response.InternalError(w)
		return
	} else if latest != nil {
		since = *latest
	}

	fresh, err := h.catalog.SearchCreatedAfter(ctx, since)
	if err != nil {
		h.logger.Warn("catalog sync failed, serving mirror as-is", slog.Any("error", err))
	} else if len(fresh) > 0 {
		images := make([]storage.Image, 0, len(fresh))
		for _, p := range fresh {
			images = append(images, storage.Image{
				ServiceID:        p.PublicID,
				Href:             p.SecureURL,
				Type:             "image",
				ServiceCreatedAt: p.CreatedAt,
			})
		}
		if err := h.mirror.UpsertImages(ctx, images); err != nil {
			h.logger.Error("mirror upsert failed", slog.Any("error", err))
			response.InternalError(w)
			return
		}
		h.metrics.AddMirrorUpserts(len(images))
		h.logger.Info("mirror synced", slog.Int("upserted", len(images)))
	}

	images, err := h.mirror.ListImages(ctx, listLimit)
	if err != nil {
		h.logger.Error("mirror list failed", slog.Any("error", err))
		response.InternalError(w)
		return
	}
	if images == nil {
		images = []storage.Image{}
	}

	response.OK(w, images)
}
