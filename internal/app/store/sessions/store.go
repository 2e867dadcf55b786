// internal/app/store/sessions/store.go
package sessionstore

import (
	"context"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for session-start records.
const CollectionName = "sessions"

// Store records session starts. Records feed the progress aggregator; they
// carry no expiry or termination state.
type Store struct {
	gw *gateway.Gateway
}

// New creates a session Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// Record inserts a session-start record stamped with the current time.
// Blank email is a silent no-op.
func (s *Store) Record(ctx context.Context, userEmail string) error {
	if normalize.Blank(userEmail) {
		return nil
	}
	rec := models.SessionRecord{
		ID:        primitive.NewObjectID(),
		UserEmail: normalize.Email(userEmail),
		CreatedAt: time.Now(),
	}
	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).InsertOne(ctx, rec)
		return err
	})
}

// CountByEmail returns how many sessions the user has started.
// Blank email counts as zero without touching storage.
func (s *Store) CountByEmail(ctx context.Context, userEmail string) (int64, error) {
	if normalize.Blank(userEmail) {
		return 0, nil
	}
	var n int64
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var err error
		n, err = db.Collection(CollectionName).CountDocuments(ctx,
			bson.M{"user_email": normalize.Email(userEmail)})
		return err
	})
	return n, err
}

// LastByEmail returns the time of the user's most recent session start, or
// nil when the user has none.
func (s *Store) LastByEmail(ctx context.Context, userEmail string) (*time.Time, error) {
	if normalize.Blank(userEmail) {
		return nil, nil
	}
	var last *time.Time
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var rec models.SessionRecord
		opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
		err := db.Collection(CollectionName).FindOne(ctx,
			bson.M{"user_email": normalize.Email(userEmail)}, opts).Decode(&rec)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return err
		}
		last = &rec.CreatedAt
		return nil
	})
	return last, err
}
