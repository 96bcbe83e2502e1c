// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/crewtask/crewtask/internal/app/features/errors"
	adminstore "github.com/crewtask/crewtask/internal/app/store/admins"
	collaboratorstore "github.com/crewtask/crewtask/internal/app/store/collaborators"
	employeestore "github.com/crewtask/crewtask/internal/app/store/employees"
	loginstore "github.com/crewtask/crewtask/internal/app/store/logins"
	"github.com/crewtask/crewtask/internal/app/system/auth"
	"github.com/crewtask/crewtask/internal/app/system/authutil"
	"github.com/crewtask/crewtask/internal/app/system/timeouts"
	"github.com/crewtask/crewtask/internal/domain/models"
	validate "github.com/dalemusser/waffle/pantry/validate"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Employees     *employeestore.Store
	Admins        *adminstore.Store
	Collaborators *collaboratorstore.Store
	Logins        *loginstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Employees:     employeestore.New(db),
		Admins:        adminstore.New(db),
		Collaborators: collaboratorstore.New(db),
		Logins:        loginstore.New(db),
	}
}

// HandleEmployeeLogin handles POST /api/auth/login.
//
// The username field also accepts the account email. Unknown accounts
// and wrong passwords produce the same 401 body.
func (h *Handler) HandleEmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		uierrors.BadRequest(w, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByUsername(ctx, req.Username)
	if errors.Is(err, employeestore.ErrNotFound) {
		emp, err = h.Employees.GetByEmail(ctx, req.Username)
	}
	if err != nil {
		if errors.Is(err, employeestore.ErrNotFound) {
			uierrors.Unauthorized(w)
			return
		}
		h.ErrLog.Internal(w, r, "employee login lookup failed", err)
		return
	}
	if !authutil.CheckPassword(req.Password, emp.PasswordHash) {
		uierrors.Unauthorized(w)
		return
	}

	user := &auth.SessionUser{
		ID:        emp.ID.Hex(),
		Name:      emp.FullName,
		Role:      auth.RoleEmployee,
		Team:      emp.Team,
		SessionID: uuid.NewString(),
	}
	if err := auth.IssueSession(w, r, user); err != nil {
		h.ErrLog.Internal(w, r, "session issue failed", err)
		return
	}
	h.recordLogin(r, user)

	writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		FullName: user.Name,
		Role:     user.Role,
		Team:     user.Team,
	})
}

// HandleAdminLogin handles POST /api/auth/admin/login.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		uierrors.BadRequest(w, "username and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	admin, err := h.Admins.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, adminstore.ErrNotFound) {
			uierrors.Unauthorized(w)
			return
		}
		h.ErrLog.Internal(w, r, "admin login lookup failed", err)
		return
	}
	if !authutil.CheckPassword(req.Password, admin.PasswordHash) {
		uierrors.Unauthorized(w)
		return
	}

	user := &auth.SessionUser{
		ID:        admin.ID.Hex(),
		Name:      admin.Username,
		Role:      auth.RoleAdmin,
		SessionID: uuid.NewString(),
	}
	if err := auth.IssueSession(w, r, user); err != nil {
		h.ErrLog.Internal(w, r, "session issue failed", err)
		return
	}
	h.recordLogin(r, user)

	writeJSON(w, http.StatusOK, loginResponse{
		ID:       user.ID,
		FullName: user.Name,
		Role:     user.Role,
	})
}

// HandleRegisterEmployee handles POST /api/auth/register-employee.
//
// Registration is a two-step write: the employee document first, then
// the collaborator slot. If the collaborator insert fails the employee
// is deleted so a half-registered account never survives.
func (h *Handler) HandleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}

	if msg := req.validate(); msg != "" {
		uierrors.BadRequest(w, msg)
		return
	}
	if err := authutil.ValidatePassword(req.Password); err != nil {
		uierrors.BadRequest(w, "password must be "+authutil.PasswordRules())
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.Internal(w, r, "password hash failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	emp, err := h.Employees.Create(ctx, models.Employee{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        strings.TrimSpace(req.Phone),
		Team:         req.Team,
		Designation:  strings.TrimSpace(req.Designation),
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, employeestore.ErrDuplicateEmail),
			errors.Is(err, employeestore.ErrDuplicateUsername):
			uierrors.Conflict(w, err.Error())
		default:
			h.ErrLog.Internal(w, r, "employee create failed", err)
		}
		return
	}

	_, err = h.Collaborators.Create(ctx, models.Collaborator{
		Name:     emp.FullName,
		Username: emp.Username,
	})
	if err != nil {
		if delErr := h.Employees.Delete(ctx, emp.ID); delErr != nil {
			h.Log.Error("registration rollback failed; employee left without collaborator slot",
				zap.String("employee_id", emp.ID.Hex()),
				zap.Error(delErr))
		}
		if errors.Is(err, collaboratorstore.ErrDuplicateUsername) {
			uierrors.Conflict(w, err.Error())
			return
		}
		h.ErrLog.Internal(w, r, "collaborator create failed", err)
		return
	}

	h.Log.Info("employee registered",
		zap.String("employee_id", emp.ID.Hex()),
		zap.String("team", emp.Team))

	writeJSON(w, http.StatusCreated, emp)
}

// HandleLogout handles POST /api/auth/logout.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := auth.ClearSession(w, r); err != nil {
		h.ErrLog.Internal(w, r, "session clear failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HandleUpdateEmployee handles PUT /api/auth/employees/{username}.
// Empty body fields keep their stored values.
func (h *Handler) HandleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req updateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		uierrors.BadRequest(w, "invalid request body")
		return
	}
	if req.Email != "" && !validate.SimpleEmailValid(strings.TrimSpace(req.Email)) {
		uierrors.BadRequest(w, "email is not valid")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := h.Employees.GetByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, employeestore.ErrNotFound) {
			uierrors.NotFound(w, "employee")
			return
		}
		h.ErrLog.Internal(w, r, "employee lookup failed", err)
		return
	}

	if err := h.Employees.UpdateInfo(ctx, emp.ID,
		req.FullName, req.Email, req.Phone, req.Team, req.Designation); err != nil {
		h.ErrLog.Internal(w, r, "employee update failed", err)
		return
	}

	updated, err := h.Employees.GetByID(ctx, emp.ID)
	if err != nil {
		h.ErrLog.Internal(w, r, "employee reload failed", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleRemoveEmployee handles DELETE /api/auth/employees/{username}.
// The collaborator slot goes with the account.
func (h *Handler) HandleRemoveEmployee(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	emp, err := h.Employees.GetByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, employeestore.ErrNotFound) {
			uierrors.NotFound(w, "employee")
			return
		}
		h.ErrLog.Internal(w, r, "employee lookup failed", err)
		return
	}

	if err := h.Employees.Delete(ctx, emp.ID); err != nil {
		h.ErrLog.Internal(w, r, "employee delete failed", err)
		return
	}
	if err := h.Collaborators.DeleteByUsername(ctx, emp.Username); err != nil {
		h.Log.Warn("collaborator slot cleanup failed",
			zap.String("username", emp.Username),
			zap.Error(err))
	}

	h.Log.Info("employee removed",
		zap.String("employee_id", emp.ID.Hex()),
		zap.String("username", emp.Username))
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// HandleEmployeeLogins handles GET /api/auth/employees/{username}/logins,
// returning the most recent sign-ins for one account, newest first.
func (h *Handler) HandleEmployeeLogins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	emp, err := h.Employees.GetByUsername(ctx, chi.URLParam(r, "username"))
	if err != nil {
		if errors.Is(err, employeestore.ErrNotFound) {
			uierrors.NotFound(w, "employee")
			return
		}
		h.ErrLog.Internal(w, r, "employee lookup failed", err)
		return
	}

	recs, err := h.Logins.ListBySubject(ctx, emp.ID.Hex(), loginHistoryLimit)
	if err != nil {
		h.ErrLog.Internal(w, r, "login history failed", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// recordLogin stores an audit row for one successful sign-in. Failures
// are logged and do not block the login.
func (h *Handler) recordLogin(r *http.Request, u *auth.SessionUser) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	rec := models.LoginRecord{
		SessionID: u.SessionID,
		SubjectID: u.ID,
		Role:      u.Role,
	}
	if err := h.Logins.Create(ctx, rec); err != nil {
		h.Log.Warn("login record write failed",
			zap.String("subject_id", u.ID),
			zap.Error(err))
	}
}

func (req *registerRequest) validate() string {
	switch {
	case strings.TrimSpace(req.FullName) == "":
		return "full_name is required"
	case strings.TrimSpace(req.Email) == "":
		return "email is required"
	case !validate.SimpleEmailValid(strings.TrimSpace(req.Email)):
		return "email is not valid"
	case strings.TrimSpace(req.Team) == "":
		return "team is required"
	case strings.TrimSpace(req.Username) == "":
		return "username is required"
	case req.Password == "":
		return "password is required"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
