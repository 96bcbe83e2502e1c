// internal/app/store/employees/employeestore.go
package employeestore

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
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("an employee with this email already exists")
	// ErrDuplicateUsername is returned when the username is taken.
	ErrDuplicateUsername = errors.New("an employee with this username already exists")
	// ErrNotFound is returned when an employee id matches no document.
	ErrNotFound = errors.New("employee not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("employees")}
}

// Create inserts a new employee after normalizing fields. The caller
// supplies PasswordHash already hashed; plain passwords never reach the
// store.
func (s *Store) Create(ctx context.Context, e models.Employee) (models.Employee, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.FullName = normalize.Name(e.FullName)
	e.FullNameCI = text.Fold(e.FullName)
	e.Email = normalize.Email(e.Email)
	e.EmailCI = text.Fold(e.Email)
	e.Team = strings.TrimSpace(e.Team)
	e.TeamCI = text.Fold(e.Team)
	e.Username = strings.TrimSpace(e.Username)
	e.UsernameCI = text.Fold(e.Username)
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, e); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Employee{}, dupError(err)
		}
		return models.Employee{}, err
	}
	return e, nil
}

// dupError picks the right sentinel for a duplicate-key failure. Mongo
// names the offending index in the error text.
func dupError(err error) error {
	if strings.Contains(err.Error(), "uniq_username_ci") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}

// GetByID loads an employee by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByUsername looks up an employee by case-insensitive username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetByEmail looks up an employee by case-insensitive email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var e models.Employee
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&e); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// List returns all employees sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Employee, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	employees := []models.Employee{}
	if err := cur.All(ctx, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// UpdateInfo merges profile fields into an employee document. Empty
// strings leave the field unchanged. Password changes go through a
// separate path and are not accepted here.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, fullName, email, phone, team, designation string) error {
	set := bson.M{"updated_at": time.Now().UTC()}

	if v := normalize.Name(fullName); v != "" {
		set["full_name"] = v
		set["full_name_ci"] = text.Fold(v)
	}
	if v := normalize.Email(email); v != "" {
		set["email"] = v
		set["email_ci"] = text.Fold(v)
	}
	if v := strings.TrimSpace(phone); v != "" {
		set["phone"] = v
	}
	if v := strings.TrimSpace(team); v != "" {
		set["team"] = v
		set["team_ci"] = text.Fold(v)
	}
	if v := strings.TrimSpace(designation); v != "" {
		set["designation"] = v
	}

	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return dupError(err)
		}
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an employee by ID. Returns ErrNotFound when absent.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
