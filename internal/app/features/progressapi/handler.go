// internal/app/features/progressapi/handler.go

// Package progressapi exposes learner progress to the client: the progress
// summary, the solved-problem indexes, and session-start recording.
package progressapi

import (
	"net/http"

	"github.com/dalemusser/stratalearn/internal/app/store/progress"
	sessionstore "github.com/dalemusser/stratalearn/internal/app/store/sessions"
	"github.com/dalemusser/stratalearn/internal/app/system/jsonutil"
	"github.com/dalemusser/stratalearn/internal/app/system/normalize"
	"go.uber.org/zap"
)

// Handler serves the progress endpoints.
type Handler struct {
	agg      *progress.Aggregator
	sessions *sessionstore.Store
	logger   *zap.Logger
}

// NewHandler creates a progress API Handler.
func NewHandler(agg *progress.Aggregator, sessions *sessionstore.Store, logger *zap.Logger) *Handler {
	return &Handler{agg: agg, sessions: sessions, logger: logger}
}

// GetProgress handles GET /?email=<email>.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if normalize.Blank(email) {
		jsonutil.BadRequest(w, "email is required")
		return
	}

	p, err := h.agg.GetUserProgress(r.Context(), email)
	if err != nil {
		h.logger.Error("progress lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to load progress")
		return
	}
	jsonutil.OK(w, p)
}

// GetSolved handles GET /solved?email=<email>&theme=<theme>.
// Theme is optional; without it all themes are included.
func (h *Handler) GetSolved(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if normalize.Blank(email) {
		jsonutil.BadRequest(w, "email is required")
		return
	}

	indexes, err := h.agg.GetSolvedProblemIndexes(r.Context(), email, r.URL.Query().Get("theme"))
	if err != nil {
		h.logger.Error("solved lookup failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to load solved problems")
		return
	}
	jsonutil.OK(w, map[string]any{"indexes": indexes})
}

type sessionRequest struct {
	Email string `json:"email"`
}

// RecordSession handles POST /session with {"email": "..."}.
func (h *Handler) RecordSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON body")
		return
	}
	if normalize.Blank(req.Email) {
		jsonutil.BadRequest(w, "email is required")
		return
	}

	if err := h.sessions.Record(r.Context(), req.Email); err != nil {
		h.logger.Error("session record failed", zap.Error(err))
		jsonutil.InternalError(w, "failed to record session")
		return
	}
	jsonutil.Created(w, map[string]string{"status": "recorded"})
}
