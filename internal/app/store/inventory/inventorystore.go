// internal/app/store/inventory/inventorystore.go

// Package inventorystore manages earned inventory items. The collection has
// historically been written by multiple app versions with drifting document
// shapes, so every read path classifies decode failures and recovers rather
// than surfacing them. Inventory is reconstructible; losing it beats
// crashing the caller.
package inventorystore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CollectionName is the MongoDB collection for inventory items.
const CollectionName = "inventory"

// ErrNilItem is returned when a nil item is passed to Add.
var ErrNilItem = errors.New("inventorystore: nil item")

// Recovery repairs the inventory collection after a shape mismatch. The
// default drops the collection; hosts that migrate legacy shapes instead
// can inject their own.
type Recovery func(ctx context.Context, db *mongo.Database) error

// DropRecovery discards the whole collection. The next writes rebuild it
// with the current shape.
func DropRecovery(ctx context.Context, db *mongo.Database) error {
	return db.Collection(CollectionName).Drop(ctx)
}

// Store manages inventory items.
type Store struct {
	gw      *gateway.Gateway
	recover Recovery
	log     *zap.Logger
}

// New creates an inventory Store with the default drop recovery.
func New(gw *gateway.Gateway, logger *zap.Logger) *Store {
	return NewWithRecovery(gw, DropRecovery, logger)
}

// NewWithRecovery creates an inventory Store with a custom recovery strategy.
func NewWithRecovery(gw *gateway.Gateway, rec Recovery, logger *zap.Logger) *Store {
	if rec == nil {
		rec = DropRecovery
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{gw: gw, recover: rec, log: logger}
}

// Add stores one earned item. If the insert fails on a shape mismatch the
// store recovers and retries once; any other failure, including a failure
// of the retry, propagates.
func (s *Store) Add(ctx context.Context, item *models.InventoryItem) error {
	if item == nil {
		return ErrNilItem
	}
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	item.UserEmail = normalize.Email(item.UserEmail)
	item.ItemID = normalize.Query(item.ItemID)
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).InsertOne(ctx, item)
		if err == nil || !IsShapeMismatch(err) {
			return err
		}
		if err := s.recovered(ctx, db, "add", err); err != nil {
			return err
		}
		_, err = db.Collection(CollectionName).InsertOne(ctx, item)
		return err
	})
}

// HasItem reports whether the user owns the given item. A shape mismatch
// while decoding triggers recovery and reads as "not owned".
func (s *Store) HasItem(ctx context.Context, userEmail, itemID string) (bool, error) {
	if normalize.Blank(userEmail) || normalize.Blank(itemID) {
		return false, nil
	}
	var owned bool
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var item models.InventoryItem
		err := db.Collection(CollectionName).FindOne(ctx, bson.M{
			"user_email": normalize.Email(userEmail),
			"item_id":    normalize.Query(itemID),
		}).Decode(&item)
		switch {
		case err == mongo.ErrNoDocuments:
			return nil
		case err == nil:
			owned = true
			return nil
		case IsShapeMismatch(err):
			return s.recovered(ctx, db, "has_item", err)
		default:
			return err
		}
	})
	return owned, err
}

// GetByUser returns the user's items. A shape mismatch while decoding
// triggers recovery and an empty result.
func (s *Store) GetByUser(ctx context.Context, userEmail string) ([]models.InventoryItem, error) {
	items := []models.InventoryItem{}
	if normalize.Blank(userEmail) {
		return items, nil
	}
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		cur, err := db.Collection(CollectionName).Find(ctx,
			bson.M{"user_email": normalize.Email(userEmail)})
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		if err := cur.All(ctx, &items); err != nil {
			if IsShapeMismatch(err) {
				items = items[:0]
				return s.recovered(ctx, db, "get_by_user", err)
			}
			return err
		}
		return nil
	})
	return items, err
}

// recovered runs the recovery strategy for a detected shape mismatch.
func (s *Store) recovered(ctx context.Context, db *mongo.Database, op string, cause error) error {
	s.log.Warn("inventory shape mismatch, running recovery",
		zap.String("op", op),
		zap.Error(cause))
	if err := s.recover(ctx, db); err != nil {
		return err
	}
	s.log.Info("inventory recovered", zap.String("op", op))
	return nil
}

// IsShapeMismatch reports whether err is a document-shape decode failure as
// opposed to a connectivity or server error. Typed decode errors are checked
// first, then the known driver message forms.
func IsShapeMismatch(err error) bool {
	if err == nil {
		return false
	}

	var de *bsoncodec.DecodeError
	if errors.As(err, &de) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, kw := range []string{
		"cannot decode",
		"error decoding key",
		"cannot transform type",
		"invalid length of bytes",
	} {
		if strings.Contains(msg, kw) {
			return true
		}
	}
	return false
}
