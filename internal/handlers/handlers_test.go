package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ejfox/photos/internal/analytics"
	"github.com/ejfox/photos/internal/catalog"
	"github.com/ejfox/photos/internal/exif"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func httpBody(s string) io.Reader {
	return strings.NewReader(s)
}

// fakeCatalog implements the catalog surfaces the handlers depend on.
type fakeCatalog struct {
	photos    []catalog.Photo
	searchErr error

	addedTags   []string
	removedTags []string
	contexts    []map[string]string
	manageErr   error
}

func (f *fakeCatalog) Search(ctx context.Context, opts catalog.SearchOptions) ([]catalog.Photo, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.photos, nil
}

func (f *fakeCatalog) AddTag(ctx context.Context, publicID, tag string) error {
	if f.manageErr != nil {
		return f.manageErr
	}
	f.addedTags = append(f.addedTags, publicID+":"+tag)
	return nil
}

func (f *fakeCatalog) RemoveTag(ctx context.Context, publicID, tag string) error {
	if f.manageErr != nil {
		return f.manageErr
	}
	f.removedTags = append(f.removedTags, publicID+":"+tag)
	return nil
}

func (f *fakeCatalog) UpdateContext(ctx context.Context, publicID string, kv map[string]string) error {
	if f.manageErr != nil {
		return f.manageErr
	}
	f.contexts = append(f.contexts, kv)
	return nil
}

// emptySource is a metadata source with nothing stored.
type emptySource struct{}

func (emptySource) Fetch(ctx context.Context, publicID string) (exif.Raw, error) {
	return nil, exif.ErrNotFound
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestStatsHandlerCatalogFailure(t *testing.T) {
	cat := &fakeCatalog{searchErr: errors.New("catalog down")}
	engine := analytics.NewEngine(emptySource{}, 2, nil, testLogger())
	h := NewStatsHandler(cat, engine, 100, testLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if body := decodeError(t, rec); body["category"] != "source_unavailable" {
		t.Errorf("category = %q, want source_unavailable", body["category"])
	}
}

func TestStatsHandlerSuccess(t *testing.T) {
	cat := &fakeCatalog{photos: []catalog.Photo{
		{PublicID: "photos/a", CreatedAt: time.Now()},
		{PublicID: "screenshots/b", CreatedAt: time.Now()},
	}}
	engine := analytics.NewEngine(emptySource{}, 2, nil, testLogger())
	h := NewStatsHandler(cat, engine, 100, testLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var payload analytics.StatsPayload
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	// No stored metadata anywhere, so nothing is photographic.
	if payload.Stats.TotalPhotos != 0 {
		t.Errorf("TotalPhotos = %d, want 0", payload.Stats.TotalPhotos)
	}
}

func TestArchiveHandlerValidation(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing both", "", http.StatusBadRequest},
		{"missing year", "?month=3", http.StatusBadRequest},
		{"month out of range", "?month=13&year=2024", http.StatusBadRequest},
		{"month zero", "?month=0&year=2024", http.StatusBadRequest},
		{"year zero", "?month=3&year=0", http.StatusBadRequest},
		{"valid", "?month=3&year=2024", http.StatusOK},
	}

	h := NewArchiveHandler(&fakeCatalog{}, 100, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/archive"+tt.query, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestCalendarHandler(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	cat := &fakeCatalog{photos: []catalog.Photo{
		{PublicID: "a", SecureURL: "https://x/upload/a.jpg", CreatedAt: ts},
	}}
	h := NewCalendarHandler(cat, 100, testLogger())

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/v1/calendar", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var days []analytics.CalendarDay
	if err := json.NewDecoder(rec.Body).Decode(&days); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(days) != 1 || days[0].Date != "2024-03-01" {
		t.Errorf("days = %+v", days)
	}
}

func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestPhotosHandlerAddTag(t *testing.T) {
	cat := &fakeCatalog{}
	h := NewPhotosHandler(cat, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/sunset/tags",
		httpBody(`{"tag":"photoblog"}`))
	req = withURLParams(req, map[string]string{"id": "sunset"})

	rec := httptest.NewRecorder()
	h.AddTag(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(cat.addedTags) != 1 || cat.addedTags[0] != "sunset:photoblog" {
		t.Errorf("addedTags = %v", cat.addedTags)
	}
}

func TestPhotosHandlerAddTagValidation(t *testing.T) {
	h := NewPhotosHandler(&fakeCatalog{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/sunset/tags", httpBody(`{}`))
	req = withURLParams(req, map[string]string{"id": "sunset"})

	rec := httptest.NewRecorder()
	h.AddTag(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestPhotosHandlerRemoveTag(t *testing.T) {
	cat := &fakeCatalog{}
	h := NewPhotosHandler(cat, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/photos/sunset/tags/photoblog", nil)
	req = withURLParams(req, map[string]string{"id": "sunset", "tag": "photoblog"})

	rec := httptest.NewRecorder()
	h.RemoveTag(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(cat.removedTags) != 1 || cat.removedTags[0] != "sunset:photoblog" {
		t.Errorf("removedTags = %v", cat.removedTags)
	}
}

func TestPhotosHandlerUpdate(t *testing.T) {
	cat := &fakeCatalog{}
	h := NewPhotosHandler(cat, testLogger())

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/photos/sunset",
		httpBody(`{"context":{"alt":"dusk over the river"}}`))
	req = withURLParams(req, map[string]string{"id": "sunset"})

	rec := httptest.NewRecorder()
	h.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(cat.contexts) != 1 || cat.contexts[0]["alt"] != "dusk over the river" {
		t.Errorf("contexts = %v", cat.contexts)
	}
}

func TestPhotosHandlerManageFailure(t *testing.T) {
	cat := &fakeCatalog{manageErr: errors.New("catalog down")}
	h := NewPhotosHandler(cat, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/photos/sunset/tags",
		httpBody(`{"tag":"photoblog"}`))
	req = withURLParams(req, map[string]string{"id": "sunset"})

	rec := httptest.NewRecorder()
	h.AddTag(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}
