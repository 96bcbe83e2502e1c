// internal/app/features/teams/routes.go
package teams

import (
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the team roster endpoints.
// Typically: r.Mount("/api/fetch/team", teams.Routes(handler))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/", h.HandleListTeams)
		pr.Get("/{team}", h.HandleTeamRoster)
	})

	return r
}
