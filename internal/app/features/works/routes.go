// internal/app/features/works/routes.go
package works

import (
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the weekly work log view.
// Typically mounted inside the solution router as /works.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/edit", h.ServeEditTarget)
	})

	return r
}

// APIRoutes mounts the work log CRUD API.
// Typically: r.Mount("/api/works", works.APIRoutes(h, sm))
func APIRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.HandleAPIList)
		pr.Get("/{id}", h.HandleAPIGet)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole("admin", "editor"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Post("/bulk_delete", h.HandleBulkDelete)
	})

	return r
}
