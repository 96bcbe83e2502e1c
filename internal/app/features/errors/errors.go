// internal/app/features/errors/errors.go
package errors

import (
	"encoding/json"
	"net/http"
)

// errorBody is the JSON shape every error response uses.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes an error response with the given status and message.
func JSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: msg})
}

// BadRequest writes a 400 with the validation message.
func BadRequest(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusBadRequest, msg)
}

// Unauthorized writes a 401. The message is uniform so callers cannot
// tell unknown users apart from bad passwords.
func Unauthorized(w http.ResponseWriter) {
	JSON(w, http.StatusUnauthorized, "invalid credentials")
}

// Forbidden writes a 403.
func Forbidden(w http.ResponseWriter) {
	JSON(w, http.StatusForbidden, "forbidden")
}

// NotFound writes a 404 naming the missing resource.
func NotFound(w http.ResponseWriter, what string) {
	JSON(w, http.StatusNotFound, what+" not found")
}

// Conflict writes a 409 with the duplicate message.
func Conflict(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusConflict, msg)
}
