// internal/app/system/seeding/seeding.go

// Package seeding creates the records the application cannot run without.
// The super administrator only ever comes from here: the role rules refuse
// to grant it at runtime, so a deployment with no super admin configured
// and none seeded can never gain one.
package seeding

import (
	"context"
	"fmt"

	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.uber.org/zap"
)

// EnsureSuperAdmin creates the configured super-admin account if no super
// admin exists yet. Blank configuration is not an error; startup just logs
// and continues without one.
func EnsureSuperAdmin(ctx context.Context, users *userstore.Store, email, name string, logger *zap.Logger) error {
	if normalize.Blank(email) {
		logger.Warn("no super admin configured; role administration requires one")
		return nil
	}

	exists, err := users.HasSuperAdmin(ctx)
	if err != nil {
		return fmt.Errorf("checking for super admin: %w", err)
	}
	if exists {
		return nil
	}

	u := &models.User{
		Email:    email,
		Name:     name,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
	if err := users.Insert(ctx, u); err != nil {
		if err == userstore.ErrDuplicateEmail {
			// The configured email belongs to an existing non-super-admin
			// account. Refusing is safer than promoting it silently.
			return fmt.Errorf("super admin email %s already belongs to another account", u.Email)
		}
		return fmt.Errorf("seeding super admin: %w", err)
	}

	logger.Info("seeded super admin", zap.String("email", u.Email))
	return nil
}
