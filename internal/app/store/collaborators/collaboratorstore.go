// internal/app/store/collaborators/collaboratorstore.go
package collaboratorstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/crewtask/crewtask/internal/app/system/normalize"
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
	ErrDuplicateUsername = errors.New("a collaborator with this username already exists")
	ErrNotFound          = errors.New("collaborator not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("collaborators")}
}

// Create inserts a new collaborator slot, one per username.
func (s *Store) Create(ctx context.Context, c models.Collaborator) (models.Collaborator, error) {
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	c.Name = normalize.Name(c.Name)
	c.Username = strings.TrimSpace(c.Username)
	c.UsernameCI = text.Fold(c.Username)
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Collaborator{}, ErrDuplicateUsername
		}
		return models.Collaborator{}, err
	}
	return c, nil
}

// List returns all collaborator records sorted by username.
func (s *Store) List(ctx context.Context) ([]models.Collaborator, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "username_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Collaborator{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a collaborator by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Collaborator, error) {
	var c models.Collaborator
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// UpdateMessage overwrites the stored message for one collaborator.
// Each write replaces the previous message; there is no history.
func (s *Store) UpdateMessage(ctx context.Context, id primitive.ObjectID, message string) (*models.Collaborator, error) {
	var c models.Collaborator
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"message":    message,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// FindByUsername looks up collaborators by case-insensitive exact
// username. An empty result is a normal empty slice, not an error;
// callers render it as "no collaborators".
func (s *Store) FindByUsername(ctx context.Context, username string) ([]models.Collaborator, error) {
	cur, err := s.c.Find(ctx, bson.M{"username_ci": text.Fold(username)})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Collaborator{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteByUsername removes the slot for one username. Used when an
// employee account is removed; absence is not an error there.
func (s *Store) DeleteByUsername(ctx context.Context, username string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"username_ci": text.Fold(username)})
	return err
}
