// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	admindashfeature "github.com/dalemusser/arenadash/internal/app/features/admindash"
	errorsfeature "github.com/dalemusser/arenadash/internal/app/features/errors"
	healthfeature "github.com/dalemusser/arenadash/internal/app/features/health"
	heartbeatfeature "github.com/dalemusser/arenadash/internal/app/features/heartbeat"
	homefeature "github.com/dalemusser/arenadash/internal/app/features/home"
	"github.com/dalemusser/arenadash/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, backend setup, and any Startup
// hooks have completed. arenadash initializes the template engine, applies
// the session middleware that identifies each viewer, and mounts the home,
// health, heartbeat and admin dashboard features.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps BackendDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	var pinger healthfeature.Pinger
	if deps.Platform != nil {
		pinger = deps.Platform
	}
	healthHandler := healthfeature.NewHandler(pinger, deps.Screens, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	r.Group(func(pr chi.Router) {
		// Every page gets a stable viewer id so screens stay with their browser.
		pr.Use(sessionMgr.LoadViewer)

		homeHandler := homefeature.NewHandler(sessionMgr, logger)
		pr.Mount("/", homefeature.Routes(homeHandler))

		dashHandler := admindashfeature.NewHandler(deps.Platform, deps.Screens, sessionMgr, logger)
		pr.Mount("/admin", admindashfeature.Routes(dashHandler, appCfg.DetailRateLimit))

		heartbeatHandler := heartbeatfeature.NewHandler(deps.Screens, logger)
		pr.Mount("/api/heartbeat", heartbeatfeature.Routes(heartbeatHandler))
	})

	return r, nil
}
