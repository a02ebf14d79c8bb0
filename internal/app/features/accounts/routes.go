// internal/app/features/accounts/routes.go
package accounts

import (
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Get("/profile", h.ServeProfile)
		pr.Patch("/profile", h.HandleUpdateProfile)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Use(sm.RequireRole("admin"))

		pr.Get("/", h.HandleList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}/role", h.HandleUpdateRole)
		pr.Patch("/{id}/active", h.HandleSetActive)
		pr.Patch("/{id}/password", h.HandleUpdatePassword)
	})

	return r
}
