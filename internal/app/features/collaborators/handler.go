// internal/app/features/collaborators/handler.go
package collaborators

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	collaboratorstore "github.com/crewtask/crewtask/internal/app/store/collaborators"
	"github.com/crewtask/crewtask/internal/app/system/msgsanitize"
	"github.com/crewtask/crewtask/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Collaborators *collaboratorstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Collaborators: collaboratorstore.New(db),
	}
}

// messageRequest is the body for message updates.
type messageRequest struct {
	Message string `json:"message"`
}

// HandleList handles GET /api/admin/collaborators.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	collabs, err := h.Collaborators.List(ctx)
	if err != nil {
		h.ErrLog.Internal(w, r, "collaborator list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, collabs)
}

// HandleUpdateMessage handles PUT /api/admin/collaborators/{id}.
//
// The message is sanitized before storage and overwrites the previous
// one; each collaborator holds a single message slot.
func (h *Handler) HandleUpdateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.NotFound(w, "collaborator")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}

	msg := msgsanitize.Message(req.Message)
	if msg == "" {
		uierrors.BadRequest(w, "message is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Collaborators.UpdateMessage(ctx, id, msg)
	if err != nil {
		if errors.Is(err, collaboratorstore.ErrNotFound) {
			uierrors.NotFound(w, "collaborator")
			return
		}
		h.ErrLog.Internal(w, r, "collaborator message update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleFindByUsername handles GET /api/admin/collaborators/username/{username}.
// No match is a 200 with an empty list.
func (h *Handler) HandleFindByUsername(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	collabs, err := h.Collaborators.FindByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		h.ErrLog.Internal(w, r, "collaborator lookup failed", err)
		return
	}
	writeJSON(w, http.StatusOK, collabs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
