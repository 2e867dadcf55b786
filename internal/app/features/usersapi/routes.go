// internal/app/features/usersapi/routes.go
package usersapi

import (
	"net/http"

	"github.com/dalemusser/stratalearn/internal/app/system/apicors"
	"github.com/dalemusser/stratalearn/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Routes returns the user administration router.
//
// When mounted at /api/users:
//   - GET  /api/users         - summary list/search (q)
//   - GET  /api/users/raw     - full records, administrators only
//   - POST /api/users/role    - change a user's role
//   - POST /api/users/active  - activate or deactivate a user
//
// Authentication is via API key; per-user authorization happens in the
// store against the acting user's stored role.
func Routes(h *Handler, apiKey string, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(apicors.Middleware())
	r.Use(auth.APIKeyAuth(apiKey, logger))

	r.Get("/", h.List)
	r.Get("/raw", h.SearchRaw)
	r.Post("/role", h.SetRole)
	r.Post("/active", h.SetActive)

	return r
}
