// internal/app/store/results/resultstore.go
package resultstore

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

// CollectionName is the MongoDB collection for problem results.
const CollectionName = "results"

// usersCollection is read directly to resolve an email to a user id.
const usersCollection = "users"

// ErrNilResult is returned when a nil result is passed to Insert or Update.
var ErrNilResult = errors.New("resultstore: nil result")

// Store manages per-problem result documents. One document per
// (user, theme, problem index) is a caller convention; the store itself
// inserts whatever it is given.
type Store struct {
	gw *gateway.Gateway
}

// New creates a result Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// Insert stores a new result document.
func (s *Store) Insert(ctx context.Context, r *models.ResultDoc) error {
	if r == nil {
		return ErrNilResult
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	r.Theme = normalize.Query(r.Theme)
	now := time.Now()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	r.UpdatedAt = now

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).InsertOne(ctx, r)
		return err
	})
}

// Update replaces the stored document by id. The payload is opaque to the
// store, so the whole document is rewritten rather than patched.
func (s *Store) Update(ctx context.Context, r *models.ResultDoc) error {
	if r == nil {
		return ErrNilResult
	}
	r.Theme = normalize.Query(r.Theme)
	r.UpdatedAt = time.Now()

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).ReplaceOne(ctx, bson.M{"_id": r.ID}, r)
		return err
	})
}

// GetByID loads a result by its hex ObjectID.
// Blank/malformed ids and missing results resolve to nil without an error.
func (s *Store) GetByID(ctx context.Context, id string) (*models.ResultDoc, error) {
	oid, err := primitive.ObjectIDFromHex(normalize.Query(id))
	if err != nil {
		return nil, nil
	}
	var r *models.ResultDoc
	err = s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var doc models.ResultDoc
		if err := db.Collection(CollectionName).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil
			}
			return err
		}
		r = &doc
		return nil
	})
	return r, err
}

// GetByUser returns all results for the user with the given email, oldest
// first. The email resolves through the users collection regardless of the
// user's active flag; an unknown email yields an empty slice.
func (s *Store) GetByUser(ctx context.Context, userEmail string) ([]models.ResultDoc, error) {
	results := []models.ResultDoc{}
	if normalize.Blank(userEmail) {
		return results, nil
	}
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		userID, ok, err := resolveUserID(ctx, db, userEmail)
		if err != nil || !ok {
			return err
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
		cur, err := db.Collection(CollectionName).Find(ctx, bson.M{"user_id": userID}, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		return cur.All(ctx, &results)
	})
	return results, err
}

// resolveUserID maps an email to the owning user's id. Deactivated users
// keep their history, so there is no active filter here.
func resolveUserID(ctx context.Context, db *mongo.Database, email string) (primitive.ObjectID, bool, error) {
	var row struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	err := db.Collection(usersCollection).FindOne(ctx,
		bson.M{"email": normalize.Email(email)},
		options.FindOne().SetProjection(bson.M{"_id": 1}),
	).Decode(&row)
	if err == mongo.ErrNoDocuments {
		return primitive.NilObjectID, false, nil
	}
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	return row.ID, true, nil
}
