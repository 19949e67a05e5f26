// Package response provides HTTP response helpers for JSON APIs.
// Error responses carry a stable machine-readable category alongside
// the human-readable message.
package response

import (
	"encoding/json"
	"net/http"
)

// Stable error categories.
const (
	CategoryBadRequest  = "bad_request"
	CategoryNotFound    = "not_found"
	CategoryUnavailable = "source_unavailable"
	CategoryInternal    = "internal"
)

// JSON writes a JSON response with the given status code.
// It sets the Content-Type header to application/json.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error writes a JSON error response.
// Format: {"error": "message", "category": "code"}
func Error(w http.ResponseWriter, status int, category, message string) {
	JSON(w, status, map[string]string{"error": message, "category": category})
}

// OK writes a JSON success response with status 200.
func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

// NoContent writes an empty response with status 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// BadRequest writes a 400 error response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, CategoryBadRequest, message)
}

// NotFound writes a 404 error response.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, CategoryNotFound, message)
}

// SourceUnavailable writes a 502 error response, used when an upstream
// collaborator (catalog or extractor) fails entirely.
func SourceUnavailable(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadGateway, CategoryUnavailable, message)
}

// InternalError writes a 500 error response.
// It returns a generic message to the client.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, CategoryInternal, "internal server error")
}

// StatusResponse is a common response for simple operations.
type StatusResponse struct {
	Status string `json:"status"`
}

// OKStatus writes {"status": "ok"} with status 200.
func OKStatus(w http.ResponseWriter) {
	OK(w, StatusResponse{Status: "ok"})
}
