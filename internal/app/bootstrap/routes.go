// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	healthfeature "github.com/dalemusser/stratalearn/internal/app/features/health"
	progressapifeature "github.com/dalemusser/stratalearn/internal/app/features/progressapi"
	usersapifeature "github.com/dalemusser/stratalearn/internal/app/features/usersapi"
	"github.com/dalemusser/stratalearn/internal/app/store/progress"
	sessionstore "github.com/dalemusser/stratalearn/internal/app/store/sessions"
	userstore "github.com/dalemusser/stratalearn/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// Every API route authenticates with the shared API key (Bearer token);
// per-user authorization happens in the user store against the acting
// user's stored role. There is no session or cookie auth anywhere, so no
// CSRF middleware either.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	users := userstore.New(deps.Gateway)
	sessions := sessionstore.New(deps.Gateway)
	aggregator := progress.New(deps.Gateway)

	r := chi.NewRouter()

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.Gateway, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Learner progress API
	progressHandler := progressapifeature.NewHandler(aggregator, sessions, logger)
	r.Mount("/api/progress", progressapifeature.Routes(progressHandler, appCfg.APIKey, logger))

	// User administration API
	usersHandler := usersapifeature.NewHandler(users, logger)
	r.Mount("/api/users", usersapifeature.Routes(usersHandler, appCfg.APIKey, logger))

	return r, nil
}
