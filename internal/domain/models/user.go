// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a learner or administrator account.
//
// Search fields:
//   - Email: unique identity, stored lowercase
//   - NameLower: lower-cased name for case-insensitive matching
//   - PhoneticKey: phonetic code of the name for sound-alike search
type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email       string             `bson:"email" json:"email"`
	Name        string             `bson:"name" json:"name"`
	NameLower   string             `bson:"name_lower" json:"name_lower"`
	PhoneticKey string             `bson:"phonetic_key" json:"phonetic_key"`

	Role     string `bson:"role" json:"role"`
	IsActive bool   `bson:"is_active" json:"is_active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// User roles, lowest to highest.
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// AllRoles returns all valid user roles.
func AllRoles() []string {
	return []string{
		RoleUser,
		RoleAdmin,
		RoleSuperAdmin,
	}
}

// IsValidRole checks if a role is valid.
func IsValidRole(role string) bool {
	for _, r := range AllRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// RoleRank returns the ordering of a role for privilege comparisons.
// Unknown roles rank below RoleUser.
func RoleRank(role string) int {
	switch role {
	case RoleSuperAdmin:
		return 3
	case RoleAdmin:
		return 2
	case RoleUser:
		return 1
	}
	return 0
}

// IsAdministrator reports whether the role is admin or above.
func IsAdministrator(role string) bool {
	return RoleRank(role) >= RoleRank(RoleAdmin)
}

// UserSummary is the projection of a User returned by listing and
// friendly-search queries. Full records never cross that boundary.
type UserSummary struct {
	Email    string `bson:"email" json:"email"`
	Name     string `bson:"name" json:"name"`
	Role     string `bson:"role" json:"role"`
	IsActive bool   `bson:"is_active" json:"is_active"`
}
