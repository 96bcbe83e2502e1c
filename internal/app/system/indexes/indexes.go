// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureEmployees(ctx, db, logger); err != nil {
		problems = append(problems, "employees: "+err.Error())
	}
	if err := ensureAdmins(ctx, db, logger); err != nil {
		problems = append(problems, "admins: "+err.Error())
	}
	if err := ensureCollaborators(ctx, db, logger); err != nil {
		problems = append(problems, "collaborators: "+err.Error())
	}
	if err := ensureTasks(ctx, db, logger); err != nil {
		problems = append(problems, "tasks: "+err.Error())
	}
	if err := ensureLoginRecords(ctx, db, logger); err != nil {
		problems = append(problems, "login_records: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureEmployees(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("employees"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_username_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "team_ci", Value: 1}},
			Options: options.Index().SetName("by_team_ci"),
		},
	})
}

func ensureAdmins(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("admins"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_username_ci").SetUnique(true),
		},
	})
}

func ensureCollaborators(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("collaborators"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetName("uniq_username_ci").SetUnique(true),
		},
	})
}

func ensureTasks(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("tasks"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "team", Value: 1}, {Key: "progress", Value: 1}},
			Options: options.Index().SetName("by_team_progress"),
		},
		// notification listing reads completed tasks newest first
		{
			Keys:    bson.D{{Key: "notify_new", Value: 1}, {Key: "completed_at", Value: -1}},
			Options: options.Index().SetName("by_notify_completed"),
		},
	})
}

func ensureLoginRecords(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	return ensureIndexSet(ctx, db.Collection("login_records"), logger, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "subject_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_subject_recent"),
		},
	})
}

// ensureIndexSet creates each desired index, tolerating the cases Mongo
// reports when an equivalent index already exists.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, logger *zap.Logger, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) || isAlreadyExistsErr(err) {
				logger.Debug("index already present",
					zap.String("collection", coll.Name()),
					zap.String("name", name))
				continue
			}
			logger.Warn("create index failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.Error(err))
			errs = append(errs, coll.Name()+"("+name+"): "+err.Error())
			continue
		}

		logger.Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("name", name))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

func isAlreadyExistsErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexKeySpecsConflict") ||
		strings.Contains(err.Error(), "already exists")
}
