// internal/app/features/collaborators/routes.go
package collaborators

import (
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the collaborator message board endpoints.
// Typically: r.Mount("/api/admin/collaborators", collaborators.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.HandleList)
		pr.Put("/{id}", h.HandleUpdateMessage)
		pr.Get("/username/{username}", h.HandleFindByUsername)
	})

	return r
}
