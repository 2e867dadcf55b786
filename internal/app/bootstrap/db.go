// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/indexes"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ConnectDB establishes the single MongoDB connection, wrapped in the
// storage gateway all repositories share.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema
// and Startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	gw, err := gateway.Connect(ctx, appCfg.MongoURI, appCfg.MongoDatabase, gateway.PoolConfig{
		MaxPoolSize: appCfg.MongoMaxPoolSize,
		MinPoolSize: appCfg.MongoMinPoolSize,
	}, logger)
	if err != nil {
		return DBDeps{}, err
	}

	return DBDeps{Gateway: gw}, nil
}

// EnsureSchema creates the database indexes before any repository runs a
// query. This runs after ConnectDB succeeds but before Startup and before
// the HTTP handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	logger.Info("ensuring database indexes")
	return deps.Gateway.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		if err := indexes.EnsureAll(ctx, db); err != nil {
			logger.Error("failed to ensure indexes", zap.Error(err))
			return err
		}
		return nil
	})
}
