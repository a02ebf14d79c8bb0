// internal/app/features/clients/routes.go
package clients

import (
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the client list views. The caller mounts it twice:
// r.Mount("/clients", ...) for the portal-wide view and inside the
// solution router for the scoped one.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/", h.ServeList)
		pr.Get("/edit", h.ServeEditTarget)
	})

	return r
}

// APIRoutes mounts the client CRUD API.
// Typically: r.Mount("/api/clients", clients.APIRoutes(h, sm))
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
