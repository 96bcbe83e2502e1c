package loginstore_test

import (
	"testing"
	"time"

	loginstore "github.com/crewtask/crewtask/internal/app/store/logins"
	"github.com/crewtask/crewtask/internal/domain/models"
	"github.com/crewtask/crewtask/internal/testutil"
	"github.com/google/uuid"
)

func TestStore_Create_StampsCreatedAt(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	rec := models.LoginRecord{
		SessionID: uuid.NewString(),
		SubjectID: "subject-1",
		Role:      "employee",
	}
	if err := store.Create(ctx, rec); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListBySubject(ctx, "subject-1", 10)
	if err != nil {
		t.Fatalf("ListBySubject failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ListBySubject: got %d records, want 1", len(got))
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be stamped")
	}
}

func TestStore_ListBySubject_NewestFirstAndCapped(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := loginstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		rec := models.LoginRecord{
			SessionID: uuid.NewString(),
			SubjectID: "subject-1",
			Role:      "employee",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Create(ctx, rec); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	// A record for another subject must not appear
	other := models.LoginRecord{
		SessionID: uuid.NewString(),
		SubjectID: "subject-2",
		Role:      "admin",
	}
	if err := store.Create(ctx, other); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := store.ListBySubject(ctx, "subject-1", 3)
	if err != nil {
		t.Fatalf("ListBySubject failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListBySubject: got %d records, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].CreatedAt.After(got[i-1].CreatedAt) {
			t.Error("expected records sorted newest first")
		}
	}
}
