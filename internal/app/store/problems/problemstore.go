// internal/app/store/problems/problemstore.go
package problemstore

import (
	"context"
	"errors"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionName is the MongoDB collection for problem definitions.
const CollectionName = "problems"

var (
	// ErrNilProblem is returned when a nil problem is passed to Insert.
	ErrNilProblem = errors.New("problemstore: nil problem")
	// ErrDuplicateProblem is returned when an insert collides with an
	// existing (theme, index) pair.
	ErrDuplicateProblem = errors.New("a problem with this theme and index already exists")
)

// Store manages the problem catalog.
type Store struct {
	gw *gateway.Gateway
}

// New creates a problem Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// GetByID loads a problem by its hex ObjectID.
// Blank/malformed ids and missing problems resolve to nil without an error.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Problem, error) {
	oid, err := primitive.ObjectIDFromHex(normalize.Query(id))
	if err != nil {
		return nil, nil
	}
	var p *models.Problem
	err = s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var doc models.Problem
		if err := db.Collection(CollectionName).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil
			}
			return err
		}
		p = &doc
		return nil
	})
	return p, err
}

// GetByThemeIndex loads the problem at the given position within a theme.
// Indexes are 1-based; a non-positive index resolves to nil without touching
// storage, as does a missing problem.
func (s *Store) GetByThemeIndex(ctx context.Context, theme string, index int) (*models.Problem, error) {
	if index <= 0 {
		return nil, nil
	}
	var p *models.Problem
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var doc models.Problem
		err := db.Collection(CollectionName).FindOne(ctx, bson.M{
			"theme": normalize.Query(theme),
			"index": index,
		}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return err
		}
		p = &doc
		return nil
	})
	return p, err
}

// Insert stores a new problem definition. The unique (theme, index) index
// rejects duplicates.
func (s *Store) Insert(ctx context.Context, p *models.Problem) error {
	if p == nil {
		return ErrNilProblem
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	p.Theme = normalize.Query(p.Theme)

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		if _, err := db.Collection(CollectionName).InsertOne(ctx, p); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateProblem
			}
			return err
		}
		return nil
	})
}
