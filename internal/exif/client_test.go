package exif

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		BaseURL:           srv.URL,
		CloudName:         "demo",
		APIKey:            "key",
		APISecret:         "secret",
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, nil, nil, testLogger())
}

func TestFetch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/resources/image/upload/photos/sunset" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("exif") != "true" {
			t.Error("expected exif=true query parameter")
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "key" || pass != "secret" {
			t.Error("expected basic auth credentials")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"public_id": "photos/sunset",
			"exif": map[string]interface{}{
				"Make":  "Fujifilm",
				"Model": "X-T4",
			},
		})
	})

	raw, err := client.Fetch(context.Background(), "photos/sunset")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if v, _ := raw.String("Make"); v != "Fujifilm" {
		t.Errorf("Make = %q, want Fujifilm", v)
	}
}

func TestFetchNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Fetch(context.Background(), "gone")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Fetch() error = %v, want ErrNotFound", err)
	}
}

func TestFetchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if _, err := client.Fetch(context.Background(), "broken"); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetchEmptyBag(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"public_id": "photos/plain",
		})
	})

	raw, err := client.Fetch(context.Background(), "photos/plain")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if raw == nil {
		t.Fatal("empty bag should be non-nil")
	}
	if len(raw) != 0 {
		t.Fatalf("empty bag has %d entries", len(raw))
	}
}

func TestFetchCancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"exif": map[string]interface{}{}})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Fetch(ctx, "whatever"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
