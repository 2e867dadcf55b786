// internal/domain/models/result.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResultDoc records the outcome of one problem for one user. It is inserted
// when the learner first reaches the problem and updated in place as they
// progress, so the payload is mutable. Uniqueness per (user, theme, index)
// is a caller convention, not an index.
type ResultDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Theme        string             `bson:"theme" json:"theme"`
	ProblemIndex int                `bson:"problem_index" json:"problem_index"`
	Payload      bson.M             `bson:"payload,omitempty" json:"payload,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
