// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	taskstore "github.com/crewtask/crewtask/internal/app/store/tasks"
	"github.com/crewtask/crewtask/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Notifications are a read model over completed tasks. There is no
// notifications collection; the unread flag lives on the task document.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Tasks  *taskstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Tasks:  taskstore.New(db),
	}
}

// HandleList handles GET /api/notifications with an optional ?team=
// filter. Completed tasks, newest completion first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.ListCompleted(ctx, r.URL.Query().Get("team"))
	if err != nil {
		h.ErrLog.Internal(w, r, "notification list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// HandleMarkRead handles PUT /api/notifications/{id}/read.
func (h *Handler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.NotFound(w, "notification")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Tasks.MarkRead(ctx, id); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			uierrors.NotFound(w, "notification")
			return
		}
		h.ErrLog.Internal(w, r, "notification mark read failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleMarkAllRead handles PUT /api/notifications/mark-all-read.
// The team scope is optional and comes from ?team= or a {"team": ...}
// body; the query wins when both are present. Responds with the number
// of notifications cleared.
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	team := r.URL.Query().Get("team")
	if team == "" {
		var body struct {
			Team string `json:"team"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		team = body.Team
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Tasks.MarkAllRead(ctx, team)
	if err != nil {
		h.ErrLog.Internal(w, r, "notification mark all read failed", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"modified": n})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
