// internal/app/features/progressapi/routes.go
package progressapi

import (
	"net/http"

	"github.com/dalemusser/stratalearn/internal/app/system/apicors"
	"github.com/dalemusser/stratalearn/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns the progress API router.
//
// When mounted at /api/progress:
//   - GET  /api/progress          - progress summary for one user
//   - GET  /api/progress/solved   - solved problem indexes, optionally by theme
//   - POST /api/progress/session  - record a session start
//
// Authentication is via API key (Bearer token in Authorization header).
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.GetProgress)
	r.Get("/solved", h.GetSolved)
	r.Post("/session", h.RecordSession)

	return r
}
