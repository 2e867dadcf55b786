// internal/domain/models/inventory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InventoryItem marks that a user owns an item. Rows are inserted once and
// never removed.
type InventoryItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserEmail string             `bson:"user_email" json:"user_email"`
	ItemID    string             `bson:"item_id" json:"item_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
