// internal/app/features/tasks/routes.go
package tasks

import (
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the task CRUD endpoints.
// Typically: r.Mount("/tasks", tasks.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleList)
		pr.Get("/{id}", h.HandleGet)
		pr.Put("/{id}/progress", h.HandleProgress)
	})

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

// EmployeeRoutes mounts the employee-facing task list.
// Typically: r.Mount("/api/employee/tasks", tasks.EmployeeRoutes(handler))
func EmployeeRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleEmployee))
		pr.Get("/", h.HandleEmployeeTasks)
	})

	return r
}
