package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/crewtask/crewtask/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateEmployee creates a test employee on the given team.
func (f *Fixtures) CreateEmployee(ctx context.Context, fullName, email, username, team string) models.Employee {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Employee{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		EmailCI:      text.Fold(email),
		Team:         team,
		TeamCI:       text.Fold(team),
		Username:     username,
		UsernameCI:   text.Fold(username),
		PasswordHash: "$2a$10$fixturefixturefixturefixturefixturefixturefixturefixtu",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("employees").InsertOne(ctx, e)
	if err != nil {
		f.t.Fatalf("failed to create test employee: %v", err)
	}

	return e
}

// CreateAdmin creates a test admin with the given username and password
// hash. Pass an empty hash when the test never logs in.
func (f *Fixtures) CreateAdmin(ctx context.Context, username, passwordHash string) models.Admin {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Username:     username,
		UsernameCI:   text.Fold(username),
		PasswordHash: passwordHash,
		Role:         "admin",
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("admins").InsertOne(ctx, a)
	if err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}

	return a
}

// CreateTask creates a test task for the given team with a deadline one
// week out.
func (f *Fixtures) CreateTask(ctx context.Context, title, team string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test task description",
		Deadline:    now.Add(7 * 24 * time.Hour),
		Priority:    models.PriorityMedium,
		Team:        team,
		Progress:    0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("tasks").InsertOne(ctx, task)
	if err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}

	return task
}

// CreateCompletedTask creates a task already at 100% with the unread
// notification flag set.
func (f *Fixtures) CreateCompletedTask(ctx context.Context, title, team, completedBy string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test task description",
		Deadline:    now.Add(7 * 24 * time.Hour),
		Priority:    models.PriorityMedium,
		Team:        team,
		Progress:    100,
		CompletedBy: completedBy,
		CompletedAt: &now,
		NotifyNew:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("tasks").InsertOne(ctx, task)
	if err != nil {
		f.t.Fatalf("failed to create completed test task: %v", err)
	}

	return task
}

// CreateCollaborator creates a test collaborator slot.
func (f *Fixtures) CreateCollaborator(ctx context.Context, name, username, message string) models.Collaborator {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.Collaborator{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Username:   username,
		UsernameCI: text.Fold(username),
		Message:    message,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("collaborators").InsertOne(ctx, c)
	if err != nil {
		f.t.Fatalf("failed to create test collaborator: %v", err)
	}

	return c
}
