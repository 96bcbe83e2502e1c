// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crewtask/crewtask/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateUsername = errors.New("an admin with this username already exists")
	ErrNotFound          = errors.New("admin not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// Create inserts a new admin. PasswordHash arrives already hashed.
func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Username = strings.TrimSpace(a.Username)
	a.UsernameCI = text.Fold(a.Username)
	if a.Role == "" {
		a.Role = "admin"
	}
	if a.Status == "" {
		a.Status = "active"
	}
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateUsername
		}
		return models.Admin{}, err
	}
	return a, nil
}

// GetByUsername looks up an admin by case-insensitive username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EnsureSeed upserts the configured bootstrap admin. The password hash
// is only written on first insert so a later restart never resets a
// rotated password. Idempotent.
func (s *Store) EnsureSeed(ctx context.Context, username, passwordHash string) error {
	username = strings.TrimSpace(username)
	now := time.Now().UTC()

	_, err := s.c.UpdateOne(ctx,
		bson.M{"username_ci": text.Fold(username)},
		bson.M{
			"$set": bson.M{"updated_at": now},
			"$setOnInsert": bson.M{
				"_id":           primitive.NewObjectID(),
				"username":      username,
				"username_ci":   text.Fold(username),
				"password_hash": passwordHash,
				"role":          "admin",
				"status":        "active",
				"created_at":    now,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
