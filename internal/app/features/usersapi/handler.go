// internal/app/features/usersapi/handler.go

// Package usersapi exposes user administration: friendly and raw search,
// role changes, and activation changes. Policy refusals from the user store
// come back as 403 responses carrying the refusal reason.
package usersapi

import (
	"net/http"

	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/stratalearn/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// Handler serves the user administration endpoints.
type Handler struct {
	users  *userstore.Store
	logger *zap.Logger
}

// NewHandler creates a users API Handler.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// List handles GET /?q=<query>. A blank query lists everyone; otherwise the
// query matches email, name, or sound-alike name.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.users.SearchFriendly(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("user search failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to search users")
		return
	}
	jsonutil.OK(w, map[string]any{"users": summaries})
}

// SearchRaw handles GET /raw?acting_id=<id>&contains=<filter>. Full records,
// administrators only; everyone else sees an empty list.
func (h *Handler) SearchRaw(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, err := h.users.SearchRaw(r.Context(), q.Get("acting_id"), q.Get("contains"))
	if err != nil {
		h.logger.Error("raw user search failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to search users")
		return
	}
	jsonutil.OK(w, map[string]any{"users": users})
}

type roleRequest struct {
	ActingID string `json:"acting_id"`
	TargetID string `json:"target_id"`
	Role     string `json:"role"`
}

// SetRole handles POST /role.
func (h *Handler) SetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON body")
		return
	}

	denial, err := h.users.TrySetRole(r.Context(), req.ActingID, req.TargetID, req.Role)
	if err != nil {
		h.logger.Error("role change failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to change role")
		return
	}
	if !denial.Allowed() {
		jsonutil.Forbidden(w, denial.String())
		return
	}
	jsonutil.OK(w, map[string]string{"status": "ok"})
}

type activeRequest struct {
	ActingID string `json:"acting_id"`
	TargetID string `json:"target_id"`
	Active   bool   `json:"active"`
}

// SetActive handles POST /active.
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req activeRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON body")
		return
	}

	denial, err := h.users.TrySetActive(r.Context(), req.ActingID, req.TargetID, req.Active)
	if err != nil {
		h.logger.Error("activation change failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to change activation")
		return
	}
	if !denial.Allowed() {
		jsonutil.Forbidden(w, denial.String())
		return
	}
	jsonutil.OK(w, map[string]string{"status": "ok"})
}
