// internal/app/features/auth/routes.go
package auth

import (
	sysauth "github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the auth endpoints.
// Typically: r.Mount("/api/auth", auth.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleEmployeeLogin)
	r.Post("/admin/login", h.HandleAdminLogin)
	r.Post("/logout", h.HandleLogout)

	r.Group(func(pr chi.Router) {
		pr.Use(sysauth.RequireRole(sysauth.RoleAdmin))
		pr.Post("/register-employee", h.HandleRegisterEmployee)
		pr.Put("/employees/{username}", h.HandleUpdateEmployee)
		pr.Delete("/employees/{username}", h.HandleRemoveEmployee)
		pr.Get("/employees/{username}/logins", h.HandleEmployeeLogins)
	})

	return r
}
