// Package errors renders the JSON error envelope shared by every
// feature and owns the error logger handlers report failures through.
package errors

import (
	"encoding/json"
	"net/http"
)

// envelope is the wire shape of every error response.
type envelope struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// Render writes a JSON error body with the given status.
func Render(w http.ResponseWriter, status int, msg string) {
	renderWithTrace(w, status, msg, "")
}

// RenderBadRequest writes a 400 with the given message.
func RenderBadRequest(w http.ResponseWriter, msg string) {
	Render(w, http.StatusBadRequest, msg)
}

// RenderNotFound writes a 404 with the given message.
func RenderNotFound(w http.ResponseWriter, msg string) {
	Render(w, http.StatusNotFound, msg)
}

// RenderForbidden writes a 403 with the given message.
func RenderForbidden(w http.ResponseWriter, msg string) {
	Render(w, http.StatusForbidden, msg)
}

// RenderUnauthorized writes a 401 with the given message.
func RenderUnauthorized(w http.ResponseWriter, msg string) {
	Render(w, http.StatusUnauthorized, msg)
}

func renderWithTrace(w http.ResponseWriter, status int, msg, traceID string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: msg, TraceID: traceID})
}
