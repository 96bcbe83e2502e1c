// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the notification endpoints.
// Typically: r.Mount("/api/notifications", notifications.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Get("/", h.HandleList)
		pr.Put("/mark-all-read", h.HandleMarkAllRead)
		pr.Put("/{id}/read", h.HandleMarkRead)
	})

	return r
}
