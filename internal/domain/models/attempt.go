// internal/domain/models/attempt.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Attempt is one step interaction in the attempt log. Rows are append-only:
// never updated, never deleted.
type Attempt struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID  `bson:"user_id" json:"user_id"`
	UserEmail    string              `bson:"user_email" json:"user_email"`
	ProblemID    *primitive.ObjectID `bson:"problem_id,omitempty" json:"problem_id,omitempty"`
	Theme        string              `bson:"theme" json:"theme"`
	ProblemIndex int                 `bson:"problem_index" json:"problem_index"`
	Content      bson.M              `bson:"content,omitempty" json:"content,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
