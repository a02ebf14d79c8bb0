// internal/app/features/errors/handler.go
package errors

import "net/http"

// Handler serves the standalone error endpoints that the auth
// middleware redirects browser traffic to.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden handles GET /forbidden.
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, "You do not have permission to view this page.")
}

// Unauthorized handles GET /unauthorized.
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, "Sign in to view this page.")
}
