// internal/app/features/teams/handler.go
package teams

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	"github.com/crewtask/crewtask/internal/app/store/queries/teamroster"
	"github.com/crewtask/crewtask/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Teams are not a first-class entity; the distinct team values on
// employee documents are the authoritative set.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
	}
}

// HandleListTeams handles GET /api/fetch/team.
func (h *Handler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	teams, err := teamroster.DistinctTeams(ctx, h.DB)
	if err != nil {
		h.ErrLog.Internal(w, r, "team list failed", err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandleTeamRoster handles GET /api/fetch/team/{team}.
//
// An unknown team is an empty roster, not a 404. With ?picker=1 only
// (id, name) pairs come back, for assignment pickers.
func (h *Handler) HandleTeamRoster(w http.ResponseWriter, r *http.Request) {
	team := chi.URLParam(r, "team")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if r.URL.Query().Get("picker") == "1" {
		members, err := teamroster.PickerMembersOfTeam(ctx, h.DB, team)
		if err != nil {
			h.ErrLog.Internal(w, r, "team picker roster failed", err)
			return
		}
		writeJSON(w, http.StatusOK, members)
		return
	}

	members, err := teamroster.MembersOfTeam(ctx, h.DB, team)
	if err != nil {
		h.ErrLog.Internal(w, r, "team roster failed", err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
