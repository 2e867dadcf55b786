// internal/app/store/users/rbac.go
package userstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Denial explains why a role or activation change was refused. DenyNone
// means the change was applied. Every other value is a policy refusal, not
// an error: the operation completed, it just said no.
type Denial int

const (
	DenyNone Denial = iota
	DenyActorNotFound
	DenyActorNotAdmin
	DenyTargetNotFound
	DenyTargetSuperAdmin
	DenySuperAdminGrant
	DenyFirstAdminRestricted
	DenyUnsupportedTransition
	DenySelfDeactivate
	DenyLastAdmin
	DenyBadRole
)

// Allowed reports whether the change was applied.
func (d Denial) Allowed() bool { return d == DenyNone }

func (d Denial) String() string {
	switch d {
	case DenyNone:
		return "allowed"
	case DenyActorNotFound:
		return "acting user not found"
	case DenyActorNotAdmin:
		return "acting user is not an administrator"
	case DenyTargetNotFound:
		return "target user not found"
	case DenyTargetSuperAdmin:
		return "target user is a super administrator"
	case DenySuperAdminGrant:
		return "the super administrator role cannot be granted"
	case DenyFirstAdminRestricted:
		return "only a super administrator may appoint the first administrator"
	case DenyUnsupportedTransition:
		return "unsupported role transition"
	case DenySelfDeactivate:
		return "users cannot deactivate themselves"
	case DenyLastAdmin:
		return "cannot deactivate the last active administrator"
	case DenyBadRole:
		return "unknown role"
	default:
		return "denied"
	}
}

// TrySetRole changes the target user's role on behalf of the acting user.
// The check-then-act sequence runs inside a transaction so a concurrent
// change cannot slip between the rule checks and the write.
//
// Rules, in evaluation order:
//   - both users must exist and the role must be valid
//   - the acting user must hold at least the admin role
//   - a super administrator's role never changes
//   - the super-admin role is never granted here (seeding only)
//   - the first administrator can only be appointed by a super administrator
//   - only the user<->admin transitions are supported
func (s *Store) TrySetRole(ctx context.Context, actingID, targetID, role string) (Denial, error) {
	role = normalize.Role(role)
	denial := DenyNone

	err := s.gw.RunTxn(ctx, func(ctx context.Context, db *mongo.Database) error {
		acting, err := findByHexID(ctx, db, actingID)
		if err != nil {
			return err
		}
		if acting == nil {
			denial = DenyActorNotFound
			return nil
		}
		target, err := findByHexID(ctx, db, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			denial = DenyTargetNotFound
			return nil
		}
		if !models.IsValidRole(role) {
			denial = DenyBadRole
			return nil
		}
		if !models.IsAdministrator(acting.Role) {
			denial = DenyActorNotAdmin
			return nil
		}
		if target.Role == models.RoleSuperAdmin {
			denial = DenyTargetSuperAdmin
			return nil
		}
		if role == models.RoleSuperAdmin {
			denial = DenySuperAdminGrant
			return nil
		}

		if role == models.RoleAdmin {
			// Appointing the first administrator is reserved for the super
			// admin. "First" means no admin exists at all, active or not.
			n, err := db.Collection(CollectionName).CountDocuments(ctx, bson.M{"role": models.RoleAdmin})
			if err != nil {
				return err
			}
			if n == 0 && acting.Role != models.RoleSuperAdmin {
				denial = DenyFirstAdminRestricted
				return nil
			}
		}

		promote := target.Role == models.RoleUser && role == models.RoleAdmin
		demote := target.Role == models.RoleAdmin && role == models.RoleUser
		if !promote && !demote {
			denial = DenyUnsupportedTransition
			return nil
		}

		_, err = db.Collection(CollectionName).UpdateByID(ctx, target.ID, bson.M{
			"$set": bson.M{"role": role, "updated_at": time.Now()},
		})
		return err
	})
	if err != nil {
		return DenyNone, err
	}
	return denial, nil
}

// TrySetActive activates or deactivates the target user on behalf of the
// acting user. Like TrySetRole it runs transactionally.
//
// Rules, in evaluation order:
//   - the acting user must exist and hold at least the admin role
//   - the target user must exist
//   - nobody deactivates themselves
//   - a super administrator is never deactivated
//   - the last active administrator is never deactivated
func (s *Store) TrySetActive(ctx context.Context, actingID, targetID string, active bool) (Denial, error) {
	denial := DenyNone

	err := s.gw.RunTxn(ctx, func(ctx context.Context, db *mongo.Database) error {
		acting, err := findByHexID(ctx, db, actingID)
		if err != nil {
			return err
		}
		if acting == nil {
			denial = DenyActorNotFound
			return nil
		}
		if !models.IsAdministrator(acting.Role) {
			denial = DenyActorNotAdmin
			return nil
		}
		target, err := findByHexID(ctx, db, targetID)
		if err != nil {
			return err
		}
		if target == nil {
			denial = DenyTargetNotFound
			return nil
		}

		if !active {
			if target.ID == acting.ID {
				denial = DenySelfDeactivate
				return nil
			}
			if target.Role == models.RoleSuperAdmin {
				denial = DenyTargetSuperAdmin
				return nil
			}
			if models.IsAdministrator(target.Role) {
				n, err := db.Collection(CollectionName).CountDocuments(ctx, bson.M{
					"_id":       bson.M{"$ne": target.ID},
					"role":      bson.M{"$in": bson.A{models.RoleAdmin, models.RoleSuperAdmin}},
					"is_active": true,
				})
				if err != nil {
					return err
				}
				if n == 0 {
					denial = DenyLastAdmin
					return nil
				}
			}
		}

		_, err = db.Collection(CollectionName).UpdateByID(ctx, target.ID, bson.M{
			"$set": bson.M{"is_active": active, "updated_at": time.Now()},
		})
		return err
	})
	if err != nil {
		return DenyNone, err
	}
	return denial, nil
}
