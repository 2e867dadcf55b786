// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/app/system/seeding"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are
// complete, but before the HTTP handler is built and requests are served.
//
// The only one-time work this app needs is seeding the super admin: the
// role rules never grant that role at runtime, so a deployment without one
// can only get it here.
//
// Returning a non-nil error aborts startup.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	users := userstore.New(deps.Gateway)
	return seeding.EnsureSuperAdmin(ctx, users, appCfg.SeedSuperAdminEmail, appCfg.SeedSuperAdminName, logger)
}
