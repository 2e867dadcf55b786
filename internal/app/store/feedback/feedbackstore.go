// internal/app/store/feedback/feedbackstore.go
package feedbackstore

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

// CollectionName is the MongoDB collection for result feedback.
const CollectionName = "feedback"

// ErrNilFeedback is returned when a nil record is passed to Insert.
var ErrNilFeedback = errors.New("feedbackstore: nil feedback")

// Store manages feedback attached to results. Append-only.
type Store struct {
	gw *gateway.Gateway
}

// New creates a feedback Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// Insert appends one feedback record.
func (s *Store) Insert(ctx context.Context, f *models.Feedback) error {
	if f == nil {
		return ErrNilFeedback
	}
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}
	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).InsertOne(ctx, f)
		return err
	})
}

// GetByResult returns the feedback for one result, oldest first.
// Blank/malformed ids yield an empty slice without touching storage.
func (s *Store) GetByResult(ctx context.Context, resultID string) ([]models.Feedback, error) {
	records := []models.Feedback{}
	oid, err := primitive.ObjectIDFromHex(normalize.Query(resultID))
	if err != nil {
		return records, nil
	}
	err = s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
		cur, err := db.Collection(CollectionName).Find(ctx, bson.M{"result_id": oid}, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		return cur.All(ctx, &records)
	})
	return records, err
}
