// internal/app/features/tasks/handler.go
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	taskstore "github.com/crewtask/crewtask/internal/app/store/tasks"
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/crewtask/crewtask/internal/app/system/normalize"
	"github.com/crewtask/crewtask/internal/app/system/timeouts"
	"github.com/crewtask/crewtask/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

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

// HandleCreate handles POST /tasks.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}

	switch {
	case strings.TrimSpace(req.Title) == "":
		uierrors.BadRequest(w, "title is required")
		return
	case strings.TrimSpace(req.Description) == "":
		uierrors.BadRequest(w, "description is required")
		return
	case strings.TrimSpace(req.Team) == "":
		uierrors.BadRequest(w, "team is required")
		return
	case req.Deadline.IsZero():
		uierrors.BadRequest(w, "deadline is required")
		return
	case req.Deadline.Before(time.Now()):
		uierrors.BadRequest(w, "deadline must be in the future")
		return
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		uierrors.BadRequest(w, "priority must be low, medium or high")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Tasks.Create(ctx, models.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Team:        req.Team,
		Assignees:   strings.TrimSpace(req.Assignees),
	})
	if err != nil {
		h.ErrLog.Internal(w, r, "task create failed", err)
		return
	}

	h.Log.Info("task created",
		zap.String("task_id", created.ID.Hex()),
		zap.String("team", created.Team))

	writeJSON(w, http.StatusCreated, created)
}

// HandleList handles GET /tasks with an optional ?team= filter.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx, r.URL.Query().Get("team"))
	if err != nil {
		h.ErrLog.Internal(w, r, "task list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// HandleGet handles GET /tasks/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			uierrors.NotFound(w, "task")
			return
		}
		h.ErrLog.Internal(w, r, "task get failed", err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

// HandleUpdate handles PUT /tasks/{id}. Only the fields present in the
// body are merged; progress changes go through the progress endpoint.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}

	set := bson.M{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			uierrors.BadRequest(w, "title cannot be empty")
			return
		}
		set["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Deadline != nil {
		if req.Deadline.IsZero() {
			uierrors.BadRequest(w, "deadline cannot be empty")
			return
		}
		set["deadline"] = *req.Deadline
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			uierrors.BadRequest(w, "priority must be low, medium or high")
			return
		}
		set["priority"] = *req.Priority
	}
	if req.Team != nil {
		if strings.TrimSpace(*req.Team) == "" {
			uierrors.BadRequest(w, "team cannot be empty")
			return
		}
		set["team"] = normalize.Team(*req.Team)
	}
	if req.Assignees != nil {
		set["assignees"] = strings.TrimSpace(*req.Assignees)
	}
	if len(set) == 0 {
		uierrors.BadRequest(w, "no fields to update")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Tasks.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			uierrors.NotFound(w, "task")
			return
		}
		h.ErrLog.Internal(w, r, "task update failed", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /tasks/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			uierrors.NotFound(w, "task")
			return
		}
		h.ErrLog.Internal(w, r, "task delete failed", err)
		return
	}

	h.Log.Info("task deleted", zap.String("task_id", id.Hex()))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleProgress handles PUT /tasks/{id}/progress.
//
// The completer name defaults to the session user when the body leaves
// it out. Reaching 100 stamps completion and raises the notification
// flag; dropping below 100 clears both.
func (h *Handler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req progressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}
	if req.Progress == nil {
		uierrors.BadRequest(w, "progress is required")
		return
	}
	if *req.Progress < 0 || *req.Progress > 100 {
		uierrors.BadRequest(w, "progress must be between 0 and 100")
		return
	}

	completedBy := strings.TrimSpace(req.CompletedBy)
	if completedBy == "" {
		if u, signed := auth.CurrentUser(r); signed {
			completedBy = u.Name
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Tasks.UpdateProgress(ctx, id, *req.Progress, completedBy)
	if err != nil {
		if errors.Is(err, taskstore.ErrNotFound) {
			uierrors.NotFound(w, "task")
			return
		}
		h.ErrLog.Internal(w, r, "task progress update failed", err)
		return
	}

	if updated.Progress >= 100 {
		h.Log.Info("task completed",
			zap.String("task_id", updated.ID.Hex()),
			zap.String("completed_by", updated.CompletedBy))
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleEmployeeTasks handles GET /api/employee/tasks, returning the
// task list for the caller's own team.
func (h *Handler) HandleEmployeeTasks(w http.ResponseWriter, r *http.Request) {
	u, signed := auth.CurrentUser(r)
	if !signed {
		uierrors.JSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasks, err := h.Tasks.List(ctx, u.Team)
	if err != nil {
		h.ErrLog.Internal(w, r, "employee task list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// taskID parses the {id} URL parameter. Malformed ids read as 404, the
// same as ids that match nothing.
func (h *Handler) taskID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.NotFound(w, "task")
		return primitive.NilObjectID, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
