package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewtask/crewtask/internal/app/system/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireSignedIn_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/tasks", nil)
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got content type %q", ct)
	}
}

func TestRequireSignedIn_WithUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/tasks", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Name: "Test", Role: auth.RoleEmployee})
	rec := httptest.NewRecorder()

	auth.RequireSignedIn(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRole_WrongRole(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/tasks/123", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: auth.RoleEmployee})
	rec := httptest.NewRecorder()

	auth.RequireRole(auth.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRole_NotSignedIn(t *testing.T) {
	req := httptest.NewRequest("DELETE", "/tasks/123", nil)
	rec := httptest.NewRecorder()

	auth.RequireRole(auth.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/notifications", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "Admin"})
	rec := httptest.NewRecorder()

	auth.RequireRole(auth.RoleAdmin)(okHandler()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for case-insensitive role match, got %d", rec.Code)
	}
}

func TestCurrentUser_RoundTrip(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	want := &auth.SessionUser{ID: "id1", Name: "Pat", Role: auth.RoleEmployee, Team: "ALPHA"}
	req = auth.WithTestUser(req, want)

	got, ok := auth.CurrentUser(req)
	if !ok {
		t.Fatal("expected user in context")
	}
	if got.ID != want.ID || got.Team != want.Team || got.Role != want.Role {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
