// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/crewtask/crewtask/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnsureSchema creates the indexes the stores depend on: the unique
// case-insensitive constraints and the task lookup indexes.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return indexes.EnsureAll(ctx, deps.CrewTaskMongoDatabase, logger)
}
