// internal/domain/models/session.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionRecord marks that a user started a session. Used only for counting
// and "last active" queries; rows are never mutated.
type SessionRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
