// internal/app/features/issues/routes.go
package issues

import (
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the issue list view inside the solution router.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
	})

	return r
}

// APIRoutes mounts the issue and comment API.
// Typically: r.Mount("/api/issues", issues.APIRoutes(h, sm))
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/{id}", h.HandleAPIGet)
		pr.Get("/{id}/comments", h.HandleListComments)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole("admin", "editor"))

		pr.Post("/", h.HandleCreate)
		pr.Post("/bulk_delete", h.HandleBulkDelete)
		pr.Patch("/{id}", h.HandlePatch)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/comments", h.HandleCreateComment)
		pr.Patch("/{id}/comments/{commentID}", h.HandleUpdateComment)
		pr.Delete("/{id}/comments/{commentID}", h.HandleDeleteComment)
	})

	return r
}
