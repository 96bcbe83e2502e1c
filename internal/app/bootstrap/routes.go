// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/crewtask/crewtask/internal/app/features/auth"
	collaboratorsfeature "github.com/crewtask/crewtask/internal/app/features/collaborators"
	errorsfeature "github.com/crewtask/crewtask/internal/app/features/errors"
	healthfeature "github.com/crewtask/crewtask/internal/app/features/health"
	notificationsfeature "github.com/crewtask/crewtask/internal/app/features/notifications"
	tasksfeature "github.com/crewtask/crewtask/internal/app/features/tasks"
	teamsfeature "github.com/crewtask/crewtask/internal/app/features/teams"
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this
// WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. It initializes the session
// store, applies the session-loading middleware globally, and mounts
// one feature router per application area.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	if err := auth.InitSessionStore(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	db := deps.CrewTaskMongoDatabase

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context when the
	// request carries a valid session cookie.
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.CrewTaskMongoClient, logger)
	r.Get("/health", healthHandler.Serve)

	// Authentication and registration
	authHandler := authfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/auth", authfeature.Routes(authHandler))

	// Task management
	tasksHandler := tasksfeature.NewHandler(db, errLog, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler))
	r.Mount("/api/employee/tasks", tasksfeature.EmployeeRoutes(tasksHandler))

	// Completed-task notifications
	notificationsHandler := notificationsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/notifications", notificationsfeature.Routes(notificationsHandler))

	// Team rosters
	teamsHandler := teamsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/fetch/team", teamsfeature.Routes(teamsHandler))

	// Collaborator message board
	collaboratorsHandler := collaboratorsfeature.NewHandler(db, errLog, logger)
	r.Mount("/api/admin/collaborators", collaboratorsfeature.Routes(collaboratorsHandler))

	return r, nil
}
