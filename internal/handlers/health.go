package handlers

import (
	"context"
	"net/http"

	"github.com/ejfox/photos/internal/response"
)

// HealthChecker reports readiness of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Health returns the health check handler.
// It reports 503 when the mirror database is unreachable.
func Health(store HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.Health(r.Context()); err != nil {
			response.Error(w, http.StatusServiceUnavailable, response.CategoryUnavailable, err.Error())
			return
		}
		response.OKStatus(w)
	}
}
