package teams_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	"github.com/crewtask/crewtask/internal/app/features/teams"
	"github.com/crewtask/crewtask/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*teams.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	errLog := uierrors.NewErrorLogger(logger)
	handler := teams.NewHandler(db, errLog, logger)
	fixtures := testutil.NewFixtures(t, db)
	return handler, fixtures
}

func TestHandleListTeams_Distinct(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEmployee(ctx, "Jamie Rivera", "jamie@example.com", "jrivera", "ALPHA")
	fixtures.CreateEmployee(ctx, "Sam Ortiz", "sam@example.com", "sortiz", "ALPHA")
	fixtures.CreateEmployee(ctx, "Amir Khan", "amir@example.com", "akhan", "BETA")

	req := httptest.NewRequest("GET", "/api/fetch/team", nil)
	rec := httptest.NewRecorder()
	handler.HandleListTeams(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []string
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp) != 2 {
		t.Fatalf("expected 2 teams, got %d: %v", len(resp), resp)
	}
	if resp[0] != "ALPHA" || resp[1] != "BETA" {
		t.Errorf("expected [ALPHA BETA], got %v", resp)
	}
}

func TestHandleTeamRoster(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEmployee(ctx, "Jamie Rivera", "jamie@example.com", "jrivera", "ALPHA")
	fixtures.CreateEmployee(ctx, "Amir Khan", "amir@example.com", "akhan", "BETA")

	req := httptest.NewRequest("GET", "/api/fetch/team/alpha", nil)
	req = testutil.WithChiURLParam(req, "team", "alpha")
	rec := httptest.NewRecorder()
	handler.HandleTeamRoster(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp) != 1 {
		t.Fatalf("expected 1 member, got %d", len(resp))
	}
	if resp[0].FullName != "Jamie Rivera" {
		t.Errorf("FullName: got %q, want %q", resp[0].FullName, "Jamie Rivera")
	}
}

func TestHandleTeamRoster_NeverLeaksHashes(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEmployee(ctx, "Jamie Rivera", "jamie@example.com", "jrivera", "ALPHA")

	req := httptest.NewRequest("GET", "/api/fetch/team/ALPHA", nil)
	req = testutil.WithChiURLParam(req, "team", "ALPHA")
	rec := httptest.NewRecorder()
	handler.HandleTeamRoster(rec, req)

	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "$2a$") {
		t.Errorf("roster response leaks password material: %s", body)
	}
}

func TestHandleTeamRoster_UnknownTeamIsEmptyList(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateEmployee(ctx, "Jamie Rivera", "jamie@example.com", "jrivera", "ALPHA")

	req := httptest.NewRequest("GET", "/api/fetch/team/GAMMA", nil)
	req = testutil.WithChiURLParam(req, "team", "GAMMA")
	rec := httptest.NewRecorder()
	handler.HandleTeamRoster(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []any
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp) != 0 {
		t.Errorf("expected empty roster, got %d members", len(resp))
	}
}

func TestHandleTeamRoster_PickerMode(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created := fixtures.CreateEmployee(ctx, "Jamie Rivera", "jamie@example.com", "jrivera", "ALPHA")

	req := httptest.NewRequest("GET", "/api/fetch/team/ALPHA?picker=1", nil)
	req = testutil.WithChiURLParam(req, "team", "ALPHA")
	rec := httptest.NewRecorder()
	handler.HandleTeamRoster(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	var resp []struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
	}
	testutil.DecodeJSON(t, rec, &resp)
	if len(resp) != 1 {
		t.Fatalf("expected 1 picker member, got %d", len(resp))
	}
	if resp[0].ID != created.ID.Hex() {
		t.Errorf("ID: got %q, want %q", resp[0].ID, created.ID.Hex())
	}
	// Picker rows carry no contact fields
	if strings.Contains(rec.Body.String(), "email") {
		t.Error("picker response should not include email")
	}
}
