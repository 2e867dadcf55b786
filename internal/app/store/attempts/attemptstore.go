// internal/app/store/attempts/attemptstore.go
package attemptstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for the attempt log.
const CollectionName = "attempts"

// ErrNilAttempt is returned when a nil attempt is passed to Insert.
var ErrNilAttempt = errors.New("attemptstore: nil attempt")

// Store manages the append-only attempt log. Rows are never updated or
// deleted; there is no Update method on purpose.
type Store struct {
	gw *gateway.Gateway
}

// New creates an attempt Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// Insert appends one attempt record.
func (s *Store) Insert(ctx context.Context, a *models.Attempt) error {
	if a == nil {
		return ErrNilAttempt
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	a.UserEmail = normalize.Email(a.UserEmail)
	a.Theme = normalize.Query(a.Theme)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).InsertOne(ctx, a)
		return err
	})
}

// ListByUser returns the user's attempts, newest first. Blank email yields
// an empty slice without touching storage.
func (s *Store) ListByUser(ctx context.Context, userEmail string) ([]models.Attempt, error) {
	attempts := []models.Attempt{}
	if normalize.Blank(userEmail) {
		return attempts, nil
	}
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cur, err := db.Collection(CollectionName).Find(ctx,
			bson.M{"user_email": normalize.Email(userEmail)}, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		return cur.All(ctx, &attempts)
	})
	return attempts, err
}
