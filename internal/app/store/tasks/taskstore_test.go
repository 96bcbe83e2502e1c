package taskstore_test

import (
	"testing"
	"time"

	taskstore "github.com/crewtask/crewtask/internal/app/store/tasks"
	"github.com/crewtask/crewtask/internal/domain/models"
	"github.com/crewtask/crewtask/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := models.Task{
		Title:       "Ship release notes",
		Description: "Write and publish the release notes",
		Deadline:    time.Now().UTC().Add(48 * time.Hour),
		Priority:    models.PriorityHigh,
		Team:        "alpha",
	}

	created, err := store.Create(ctx, task)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Team != "ALPHA" {
		t.Errorf("Team: got %q, want %q", created.Team, "ALPHA")
	}
	if created.Progress != 0 {
		t.Errorf("Progress: got %d, want 0", created.Progress)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if created.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestStore_Create_DefaultPriority(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := models.Task{
		Title:    "No priority given",
		Deadline: time.Now().UTC().Add(24 * time.Hour),
		Team:     "ALPHA",
	}

	created, err := store.Create(ctx, task)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Priority != models.PriorityMedium {
		t.Errorf("Priority: got %q, want %q", created.Priority, models.PriorityMedium)
	}
}

func TestStore_Create_IgnoresCompletionFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	task := models.Task{
		Title:       "Pre-completed input",
		Deadline:    now.Add(24 * time.Hour),
		Team:        "ALPHA",
		Progress:    100,
		CompletedBy: "sneaky",
		CompletedAt: &now,
		NotifyNew:   true,
	}

	created, err := store.Create(ctx, task)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Progress != 0 {
		t.Errorf("Progress: got %d, want 0", created.Progress)
	}
	if created.CompletedBy != "" || created.CompletedAt != nil || created.NotifyNew {
		t.Error("expected completion fields to be cleared on create")
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByID(ctx, primitive.NewObjectID())
	if err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_List_FiltersByTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTask(ctx, "Alpha task one", "ALPHA")
	fixtures.CreateTask(ctx, "Alpha task two", "ALPHA")
	fixtures.CreateTask(ctx, "Beta task", "BETA")

	all, err := store.List(ctx, "")
	if err != nil {
		t.Fatalf("List all failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List all: got %d tasks, want 3", len(all))
	}

	// Team argument is case-insensitive
	alpha, err := store.List(ctx, "alpha")
	if err != nil {
		t.Fatalf("List by team failed: %v", err)
	}
	if len(alpha) != 2 {
		t.Errorf("List alpha: got %d tasks, want 2", len(alpha))
	}
	for _, task := range alpha {
		if task.Team != "ALPHA" {
			t.Errorf("unexpected team %q in alpha list", task.Team)
		}
	}
}

func TestStore_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := fixtures.CreateTask(ctx, "Original title", "ALPHA")

	updated, err := store.Update(ctx, task.ID, bson.M{
		"title":    "Revised title",
		"priority": models.PriorityLow,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Revised title" {
		t.Errorf("Title: got %q, want %q", updated.Title, "Revised title")
	}
	if updated.Priority != models.PriorityLow {
		t.Errorf("Priority: got %q, want %q", updated.Priority, models.PriorityLow)
	}
	if !updated.UpdatedAt.After(task.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_Update_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, primitive.NewObjectID(), bson.M{"title": "x"})
	if err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := fixtures.CreateTask(ctx, "Doomed task", "ALPHA")

	if err := store.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, task.ID); err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := store.Delete(ctx, task.ID); err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStore_UpdateProgress_Completion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := fixtures.CreateTask(ctx, "Progress task", "ALPHA")

	updated, err := store.UpdateProgress(ctx, task.ID, 100, "Jamie Rivera")
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	if updated.Progress != 100 {
		t.Errorf("Progress: got %d, want 100", updated.Progress)
	}
	if updated.Status() != models.StatusCompleted {
		t.Errorf("Status: got %q, want %q", updated.Status(), models.StatusCompleted)
	}
	if updated.CompletedBy != "Jamie Rivera" {
		t.Errorf("CompletedBy: got %q, want %q", updated.CompletedBy, "Jamie Rivera")
	}
	if updated.CompletedAt == nil {
		t.Error("expected CompletedAt to be stamped")
	}
	if !updated.NotifyNew {
		t.Error("expected NotifyNew to be set on completion")
	}
}

func TestStore_UpdateProgress_ReopenClearsCompletion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	task := fixtures.CreateCompletedTask(ctx, "Reopened task", "ALPHA", "Jamie Rivera")

	updated, err := store.UpdateProgress(ctx, task.ID, 60, "")
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	if updated.Progress != 60 {
		t.Errorf("Progress: got %d, want 60", updated.Progress)
	}
	if updated.Status() != models.StatusOpen {
		t.Errorf("Status: got %q, want %q", updated.Status(), models.StatusOpen)
	}
	if updated.CompletedBy != "" {
		t.Errorf("expected CompletedBy cleared, got %q", updated.CompletedBy)
	}
	if updated.CompletedAt != nil {
		t.Error("expected CompletedAt cleared")
	}
	if updated.NotifyNew {
		t.Error("expected NotifyNew cleared when reopened")
	}
}

func TestStore_UpdateProgress_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.UpdateProgress(ctx, primitive.NewObjectID(), 50, "")
	if err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_ListCompleted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateTask(ctx, "Still open", "ALPHA")
	fixtures.CreateCompletedTask(ctx, "Done alpha", "ALPHA", "Jamie Rivera")
	fixtures.CreateCompletedTask(ctx, "Done beta", "BETA", "Sam Ortiz")

	all, err := store.ListCompleted(ctx, "")
	if err != nil {
		t.Fatalf("ListCompleted failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListCompleted all: got %d, want 2", len(all))
	}

	alpha, err := store.ListCompleted(ctx, "ALPHA")
	if err != nil {
		t.Fatalf("ListCompleted by team failed: %v", err)
	}
	if len(alpha) != 1 {
		t.Fatalf("ListCompleted alpha: got %d, want 1", len(alpha))
	}
	if alpha[0].Title != "Done alpha" {
		t.Errorf("Title: got %q, want %q", alpha[0].Title, "Done alpha")
	}
}

func TestStore_MarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first := fixtures.CreateCompletedTask(ctx, "Read me", "ALPHA", "Jamie Rivera")
	second := fixtures.CreateCompletedTask(ctx, "Leave me", "ALPHA", "Sam Ortiz")

	if err := store.MarkRead(ctx, first.ID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}

	got, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.NotifyNew {
		t.Error("expected NotifyNew cleared on marked task")
	}

	other, err := store.GetByID(ctx, second.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !other.NotifyNew {
		t.Error("expected NotifyNew untouched on other task")
	}
}

func TestStore_MarkRead_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.MarkRead(ctx, primitive.NewObjectID()); err != taskstore.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_MarkAllRead_ScopedToTeam(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := taskstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateCompletedTask(ctx, "Alpha one", "ALPHA", "Jamie Rivera")
	fixtures.CreateCompletedTask(ctx, "Alpha two", "ALPHA", "Jamie Rivera")
	beta := fixtures.CreateCompletedTask(ctx, "Beta one", "BETA", "Sam Ortiz")

	n, err := store.MarkAllRead(ctx, "ALPHA")
	if err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}
	if n != 2 {
		t.Errorf("MarkAllRead: got %d modified, want 2", n)
	}

	got, err := store.GetByID(ctx, beta.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.NotifyNew {
		t.Error("expected other team's notification untouched")
	}

	// Second pass has nothing left to clear
	n, err = store.MarkAllRead(ctx, "ALPHA")
	if err != nil {
		t.Fatalf("MarkAllRead second pass failed: %v", err)
	}
	if n != 0 {
		t.Errorf("MarkAllRead second pass: got %d modified, want 0", n)
	}
}
