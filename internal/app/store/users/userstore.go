// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UserID / user_id: the MongoDB ObjectID (_id) that uniquely identifies a user record
//   - Email: the human-readable identity users are known by (stored lowercase, unique)

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/stratalearn/internal/app/store/gateway"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"github.com/dalemusser/stratalearn/internal/app/system/phonetic"
	"github.com/dalemusser/stratalearn/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection for user accounts.
const CollectionName = "users"

var (
	// ErrNilUser is returned when a nil user is passed to Insert or Update.
	ErrNilUser = errors.New("userstore: nil user")
	// ErrDuplicateEmail is returned when an insert or update collides with an
	// existing user's email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New("invalid role")
)

// Store manages user records and enforces the role/activation rules.
type Store struct {
	gw *gateway.Gateway
}

// New creates a user Store backed by the given gateway.
func New(gw *gateway.Gateway) *Store {
	return &Store{gw: gw}
}

// summaryProjection limits listing/search results to the UserSummary fields.
// Full records never leave the store through those paths.
var summaryProjection = bson.M{
	"email":     1,
	"name":      1,
	"role":      1,
	"is_active": 1,
	"_id":       0,
}

// ExistsEmail reports whether any user (active or not) has the given email.
// Blank input short-circuits to false without touching storage.
func (s *Store) ExistsEmail(ctx context.Context, email string) (bool, error) {
	if normalize.Blank(email) {
		return false, nil
	}
	var exists bool
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		n, err := db.Collection(CollectionName).CountDocuments(ctx, bson.M{"email": normalize.Email(email)})
		if err != nil {
			return err
		}
		exists = n > 0
		return nil
	})
	return exists, err
}

// FindActiveByEmail loads the active user with the given email.
// Returns nil (no error) for blank input or when no active user matches.
func (s *Store) FindActiveByEmail(ctx context.Context, email string) (*models.User, error) {
	if normalize.Blank(email) {
		return nil, nil
	}
	var u *models.User
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		var doc models.User
		err := db.Collection(CollectionName).FindOne(ctx, bson.M{
			"email":     normalize.Email(email),
			"is_active": true,
		}).Decode(&doc)
		if err == mongo.ErrNoDocuments {
			return nil
		}
		if err != nil {
			return err
		}
		u = &doc
		return nil
	})
	return u, err
}

// FindByID loads a user by its hex ObjectID.
// Returns nil (no error) for blank/malformed ids and for missing users.
func (s *Store) FindByID(ctx context.Context, id string) (*models.User, error) {
	if normalize.Blank(id) {
		return nil, nil
	}
	var u *models.User
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		doc, err := findByHexID(ctx, db, id)
		if err != nil {
			return err
		}
		u = doc
		return nil
	})
	return u, err
}

// Insert stores a new user after normalizing the identity and search fields.
// The unique email index rejects duplicates; that surfaces as ErrDuplicateEmail.
func (s *Store) Insert(ctx context.Context, u *models.User) error {
	if u == nil {
		return ErrNilUser
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.NameLower = text.Fold(u.Name)
	u.PhoneticKey = phonetic.Key(u.Name)

	if u.Role == "" {
		u.Role = models.RoleUser
	}
	if !models.IsValidRole(u.Role) {
		return errBadRole
	}

	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		if _, err := db.Collection(CollectionName).InsertOne(ctx, u); err != nil {
			if wafflemongo.IsDup(err) {
				return ErrDuplicateEmail
			}
			return err
		}
		return nil
	})
}

// Update replaces the stored record by id, re-deriving the search fields.
func (s *Store) Update(ctx context.Context, u *models.User) error {
	if u == nil {
		return ErrNilUser
	}

	u.Email = normalize.Email(u.Email)
	u.Name = normalize.Name(u.Name)
	u.NameLower = text.Fold(u.Name)
	u.PhoneticKey = phonetic.Key(u.Name)
	u.UpdatedAt = time.Now()

	return s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(CollectionName).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	})
}

// SearchFriendly returns user summaries matching the query. A blank query
// returns all users. A non-blank query matches case-insensitively against
// the email, exact-case against the name, against the folded name, or
// against the phonetic key; any one match qualifies.
func (s *Store) SearchFriendly(ctx context.Context, query string) ([]models.UserSummary, error) {
	query = normalize.Query(query)
	filter := bson.M{}
	if query != "" {
		quoted := regexp.QuoteMeta(query)
		or := bson.A{
			bson.M{"email": bson.M{"$regex": quoted, "$options": "i"}},
			bson.M{"name": bson.M{"$regex": quoted}},
			bson.M{"name_lower": bson.M{"$regex": regexp.QuoteMeta(text.Fold(query))}},
		}
		if key := phonetic.Key(query); key != "" {
			or = append(or, bson.M{"phonetic_key": bson.M{"$regex": regexp.QuoteMeta(key)}})
		}
		filter["$or"] = or
	}
	return s.findSummaries(ctx, filter, options.Find().SetProjection(summaryProjection))
}

// ListAll returns user summaries. A limit of zero or less means no limit.
func (s *Store) ListAll(ctx context.Context, limit int64) ([]models.UserSummary, error) {
	opts := options.Find().SetProjection(summaryProjection)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	return s.findSummaries(ctx, bson.M{}, opts)
}

// SearchRaw returns full user records for administrator callers. Anyone
// below admin, or an unresolvable actor, gets an empty result rather than
// an error. The filter matches case-insensitively on email or name; blank
// returns all users, newest account first.
func (s *Store) SearchRaw(ctx context.Context, actingID, contains string) ([]models.User, error) {
	users := []models.User{}
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		acting, err := findByHexID(ctx, db, actingID)
		if err != nil {
			return err
		}
		if acting == nil || !models.IsAdministrator(acting.Role) {
			return nil
		}

		filter := bson.M{}
		if contains = normalize.Query(contains); contains != "" {
			quoted := regexp.QuoteMeta(contains)
			filter["$or"] = bson.A{
				bson.M{"email": bson.M{"$regex": quoted, "$options": "i"}},
				bson.M{"name": bson.M{"$regex": quoted, "$options": "i"}},
			}
		}

		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
		cur, err := db.Collection(CollectionName).Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		return cur.All(ctx, &users)
	})
	return users, err
}

// HasSuperAdmin reports whether any user holds the super-admin role.
func (s *Store) HasSuperAdmin(ctx context.Context) (bool, error) {
	var exists bool
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		n, err := db.Collection(CollectionName).CountDocuments(ctx, bson.M{"role": models.RoleSuperAdmin})
		if err != nil {
			return err
		}
		exists = n > 0
		return nil
	})
	return exists, err
}

func (s *Store) findSummaries(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.UserSummary, error) {
	summaries := []models.UserSummary{}
	err := s.gw.Run(ctx, func(ctx context.Context, db *mongo.Database) error {
		cur, err := db.Collection(CollectionName).Find(ctx, filter, opts)
		if err != nil {
			return err
		}
		defer cur.Close(ctx)
		return cur.All(ctx, &summaries)
	})
	return summaries, err
}

// findByHexID loads a user by hex ObjectID using the given handle.
// Malformed ids and missing users both resolve to nil without an error.
func findByHexID(ctx context.Context, db *mongo.Database, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(normalize.Query(id))
	if err != nil {
		return nil, nil
	}
	var u models.User
	if err := db.Collection(CollectionName).FindOne(ctx, bson.M{"_id": oid}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
