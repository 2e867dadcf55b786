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
EnsureAll is called at startup, before any repository runs a query. Each
ensure* function is idempotent (CreateMany is a no-op for indexes that
already exist). Errors are aggregated so every problem is visible and
startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureProblems(ctx, db); err != nil {
		problems = append(problems, "problems: "+err.Error())
	}
	if err := ensureResults(ctx, db); err != nil {
		problems = append(problems, "results: "+err.Error())
	}
	if err := ensureAttempts(ctx, db); err != nil {
		problems = append(problems, "attempts: "+err.Error())
	}
	if err := ensureSessions(ctx, db); err != nil {
		problems = append(problems, "sessions: "+err.Error())
	}
	if err := ensureInventory(ctx, db); err != nil {
		problems = append(problems, "inventory: "+err.Error())
	}
	if err := ensureFeedback(ctx, db); err != nil {
		problems = append(problems, "feedback: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}

	zap.L().Info("database indexes ensured")
	return nil
}

func ensure(ctx context.Context, db *mongo.Database, coll string, models []mongo.IndexModel) error {
	_, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
	if err != nil {
		zap.L().Warn("index ensure failed",
			zap.String("collection", coll),
			zap.Error(err))
	}
	return err
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "users", []mongo.IndexModel{
		// Email is the identity anchor; unique across active and inactive users.
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Administrator existence checks (role rules, last-admin protection).
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "is_active", Value: 1}},
			Options: options.Index().SetName("idx_users_role_active"),
		},
		// Raw search default ordering.
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_users_created"),
		},
	})
}

func ensureProblems(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "problems", []mongo.IndexModel{
		// Index is unique within a theme.
		{
			Keys:    bson.D{{Key: "theme", Value: 1}, {Key: "index", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_problems_theme_index"),
		},
	})
}

func ensureResults(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "results", []mongo.IndexModel{
		// Per-user listing in creation order.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_results_user_created"),
		},
		// Solved-index queries, optionally filtered by theme.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "theme", Value: 1}, {Key: "problem_index", Value: 1}},
			Options: options.Index().SetName("idx_results_user_theme_index"),
		},
	})
}

func ensureAttempts(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "attempts", []mongo.IndexModel{
		// Per-user attempt history, newest first.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_attempts_user_created"),
		},
		{
			Keys:    bson.D{{Key: "theme", Value: 1}, {Key: "problem_index", Value: 1}},
			Options: options.Index().SetName("idx_attempts_theme_index"),
		},
	})
}

func ensureSessions(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "sessions", []mongo.IndexModel{
		// Session counting and "last active" per user.
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_sessions_email_created"),
		},
	})
}

func ensureInventory(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "inventory", []mongo.IndexModel{
		// HasItem existence checks and per-user listing.
		{
			Keys:    bson.D{{Key: "user_email", Value: 1}, {Key: "item_id", Value: 1}},
			Options: options.Index().SetName("idx_inventory_email_item"),
		},
	})
}

func ensureFeedback(ctx context.Context, db *mongo.Database) error {
	return ensure(ctx, db, "feedback", []mongo.IndexModel{
		// Per-result listing in creation order.
		{
			Keys:    bson.D{{Key: "result_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("idx_feedback_result_created"),
		},
	})
}
