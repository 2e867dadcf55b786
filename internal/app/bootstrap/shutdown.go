// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown is invoked during WAFFLE's shutdown phase, after the HTTP server
// has stopped accepting new requests and existing requests have drained (or
// the shutdown timeout has elapsed).
//
// The context provided has a timeout (default 10 seconds); if cleanup takes
// too long, the context will be cancelled.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Gateway == nil {
		return nil
	}
	logger.Info("closing storage gateway")
	if err := deps.Gateway.Close(ctx); err != nil {
		logger.Error("storage gateway close failed", zap.Error(err))
		return err
	}
	return nil
}
