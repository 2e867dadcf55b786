// internal/domain/models/problem.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Problem is a static piece of learning content, identified within its
// theme by a positive index. Read-mostly: inserted by content seeding,
// looked up by the step logic.
type Problem struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Theme string             `bson:"theme" json:"theme"`
	Index int                `bson:"index" json:"index"`
}
