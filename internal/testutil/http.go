package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewtask/crewtask/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminSession returns a session user with the admin role.
func AdminSession() *auth.SessionUser {
	return &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test Admin",
		Role: auth.RoleAdmin,
	}
}

// EmployeeSession returns a session user with the employee role on the
// given team.
func EmployeeSession(team string) *auth.SessionUser {
	return &auth.SessionUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Test Employee",
		Role: auth.RoleEmployee,
		Team: team,
	}
}

// NewJSONRequest builds a request with a JSON-encoded body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// DecodeJSON decodes a recorder's body into out, failing the test on error.
func DecodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(out); err != nil {
		t.Fatalf("decode response body: %v (body: %s)", err, rec.Body.String())
	}
}
