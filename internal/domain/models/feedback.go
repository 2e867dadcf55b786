// internal/domain/models/feedback.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feedback is an append-only annotation attached to a result.
type Feedback struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ResultID primitive.ObjectID `bson:"result_id" json:"result_id"`
	Payload  bson.M             `bson:"payload,omitempty" json:"payload,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
