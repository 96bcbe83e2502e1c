// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	adminstore "github.com/crewtask/crewtask/internal/app/store/admins"
	"github.com/crewtask/crewtask/internal/app/system/authutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedAdminUsername != "" {
		if err := seedAdmin(ctx, deps, appCfg.SeedAdminUsername, appCfg.SeedAdminPassword, logger); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}
	return nil
}

// seedAdmin upserts the configured bootstrap admin account. The
// password is bcrypt-hashed before it reaches the store; an existing
// account keeps its current hash, so rotating the password in the
// database survives restarts.
func seedAdmin(ctx context.Context, deps DBDeps, username, password string, logger *zap.Logger) error {
	hash, err := authutil.HashPassword(password)
	if err != nil {
		return err
	}

	store := adminstore.New(deps.CrewTaskMongoDatabase)
	if err := store.EnsureSeed(ctx, username, hash); err != nil {
		return err
	}

	logger.Info("seed admin ensured", zap.String("username", username))
	return nil
}
