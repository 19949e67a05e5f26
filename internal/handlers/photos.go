package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/response"
)

// TagManager is the catalog management surface handlers depend on.
type TagManager interface {
	AddTag(ctx context.Context, publicID, tag string) error
	RemoveTag(ctx context.Context, publicID, tag string) error
	UpdateContext(ctx context.Context, publicID string, kv map[string]string) error
}

// PhotoCatalog combines search and management for the photos handler.
type PhotoCatalog interface {
	Searcher
	TagManager
}

// PhotosHandler serves photo listings and tag/context management.
type PhotosHandler struct {
	catalog PhotoCatalog
	logger  *slog.Logger
}

// NewPhotosHandler creates a new PhotosHandler.
func NewPhotosHandler(cat PhotoCatalog, logger *slog.Logger) *PhotosHandler {
	return &PhotosHandler{
		catalog: cat,
		logger:  logger,
	}
}

// PhotoEntry is the simplified record returned to clients.
type PhotoEntry struct {
	Href       string    `json:"href"`
	PublicID   string    `json:"public_id"`
	UploadedAt time.Time `json:"uploaded_at"`
	Tags       []string  `json:"tags,omitempty"`
	Width      int       `json:"width,omitempty"`
	Height     int       `json:"height,omitempty"`
	Format     string    `json:"format,omitempty"`
	Bytes      int64     `json:"bytes,omitempty"`
}

// List handles GET /api/v1/photos.
func (h *PhotosHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := catalog.DefaultSearchOptions()
	opts.IncludeTags = true
	if n, err := strconv.Atoi(q.Get("num")); err == nil && n > 0 {
		opts.MaxResults = n
	}
	if q.Get("only_screenshots") == "true" {
		opts.OnlyScreenshots = true
		opts.FilterOutScreenshots = false
	}
	if q.Get("only_photoblog") == "true" {
		opts.OnlyPhotoblog = true
	}

	photos, err := h.catalog.Search(r.Context(), opts)
	if err != nil {
		h.logger.Error("catalog search failed", slog.Any("error", err))
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	entries := make([]PhotoEntry, 0, len(photos))
	for _, p := range photos {
		entries = append(entries, PhotoEntry{
			Href:       p.SecureURL,
			PublicID:   p.PublicID,
			UploadedAt: p.CreatedAt,
			Tags:       p.Tags,
			Width:      p.Width,
			Height:     p.Height,
			Format:     p.Format,
			Bytes:      p.Bytes,
		})
	}

	response.OK(w, entries)
}

// tagRequest is the body of a tag addition.
type tagRequest struct {
	Tag string `json:"tag"`
}

// AddTag handles POST /api/v1/photos/{id}/tags.
func (h *PhotosHandler) AddTag(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")

	var req tagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		response.BadRequest(w, "tag must be provided")
		return
	}

	if err := h.catalog.AddTag(r.Context(), publicID, req.Tag); err != nil {
		h.logger.Error("add tag failed",
			slog.String("public_id", publicID),
			slog.Any("error", err),
		)
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	response.OKStatus(w)
}

// RemoveTag handles DELETE /api/v1/photos/{id}/tags/{tag}.
func (h *PhotosHandler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")
	tag := chi.URLParam(r, "tag")
	if tag == "" {
		response.BadRequest(w, "tag must be provided")
		return
	}

	if err := h.catalog.RemoveTag(r.Context(), publicID, tag); err != nil {
		h.logger.Error("remove tag failed",
			slog.String("public_id", publicID),
			slog.Any("error", err),
		)
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	response.OKStatus(w)
}

// updateRequest is the body of a context update.
type updateRequest struct {
	Context map[string]string `json:"context"`
}

// Update handles PATCH /api/v1/photos/{id}.
// It writes free-form context metadata (captions, descriptions) back
// to the catalog.
func (h *PhotosHandler) Update(w http.ResponseWriter, r *http.Request) {
	publicID := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Context) == 0 {
		response.BadRequest(w, "context must be provided")
		return
	}

	if err := h.catalog.UpdateContext(r.Context(), publicID, req.Context); err != nil {
		h.logger.Error("update context failed",
			slog.String("public_id", publicID),
			slog.Any("error", err),
		)
		response.SourceUnavailable(w, "photo catalog unavailable")
		return
	}

	response.OKStatus(w)
}
