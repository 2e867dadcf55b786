// internal/app/store/progress/progress.go

// Package progress derives per-user progress figures from the raw
// collections. It reads users, sessions and results directly rather than
// going through the other repositories: the figures come from two counts,
// a latest-timestamp lookup and a distinct query, and none of them need the
// repositories' entity handling.
package progress

import (
	"context"
	"sort"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	sessionsCollection = "sessions"
	resultsCollection  = "results"
)

// Aggregator computes progress summaries.
type Aggregator struct {
	gw *gateway.Gateway
}

// New creates an Aggregator backed by the given gateway.
func New(gw *gateway.Gateway) *Aggregator {
	return &Aggregator{gw: gw}
}

// GetUserProgress returns the user's session count, solved-problem count and
// latest session time. Blank email returns a zero-valued record without
// touching storage; an unknown email still reports the session figures,
// since sessions key on email while results key on the resolved user id.
func (a *Aggregator) GetUserProgress(ctx context.Context, userEmail string) (models.UserProgress, error) {
	p := models.UserProgress{}
	if normalize.Blank(userEmail) {
		return p, nil
	}
	email := normalize.Email(userEmail)
	p.UserEmail = email

	err := a.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		n, err := db.Collection(sessionsCollection).CountDocuments(ctx, bson.M{"user_email": email})
		if err != nil {
			return err
		}
		p.TotalSessions = n

		var lastRow struct {
			CreatedAt time.Time `bson:"created_at"`
		}
		opts := options.FindOne().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetProjection(bson.M{"created_at": 1})
		err = db.Collection(sessionsCollection).FindOne(ctx, bson.M{"user_email": email}, opts).Decode(&lastRow)
		if err != nil && err != mongo.ErrNoDocuments {
			return err
		}
		if err == nil {
			last := lastRow.CreatedAt
			p.LastSessionAt = &last
		}

		userID, ok, err := resolveUserID(ctx, db, email)
		if err != nil || !ok {
			return err
		}
		n, err = db.Collection(resultsCollection).CountDocuments(ctx, bson.M{"user_id": userID})
		if err != nil {
			return err
		}
		p.TotalSolved = n
		return nil
	})
	return p, err
}

// GetSolvedProblemIndexes returns the sorted, duplicate-free problem indexes
// the user has results for, optionally limited to one theme. Blank email or
// an unknown user yields an empty slice.
func (a *Aggregator) GetSolvedProblemIndexes(ctx context.Context, userEmail, theme string) ([]int, error) {
	indexes := []int{}
	if normalize.Blank(userEmail) {
		return indexes, nil
	}
	err := a.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		userID, ok, err := resolveUserID(ctx, db, userEmail)
		if err != nil || !ok {
			return err
		}

		filter := bson.M{"user_id": userID}
		if theme = normalize.Query(theme); theme != "" {
			filter["theme"] = theme
		}
		raw, err := db.Collection(resultsCollection).Distinct(ctx, "problem_index", filter)
		if err != nil {
			return err
		}

		for _, v := range raw {
			switch n := v.(type) {
			case int32:
				indexes = append(indexes, int(n))
			case int64:
				indexes = append(indexes, int(n))
			case int:
				indexes = append(indexes, n)
			}
		}
		sort.Ints(indexes)
		return nil
	})
	return indexes, err
}

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
