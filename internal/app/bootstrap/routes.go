// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	accountsfeature "github.com/daehokim/soluhub/internal/app/features/accounts"
	clientsfeature "github.com/daehokim/soluhub/internal/app/features/clients"
	dashboardfeature "github.com/daehokim/soluhub/internal/app/features/dashboard"
	errorsfeature "github.com/daehokim/soluhub/internal/app/features/errors"
	healthfeature "github.com/daehokim/soluhub/internal/app/features/health"
	issuesfeature "github.com/daehokim/soluhub/internal/app/features/issues"
	loginfeature "github.com/daehokim/soluhub/internal/app/features/login"
	logoutfeature "github.com/daehokim/soluhub/internal/app/features/logout"
	worksfeature "github.com/daehokim/soluhub/internal/app/features/works"
	"github.com/daehokim/soluhub/internal/app/system/auth"
	"github.com/daehokim/soluhub/internal/app/system/clock"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// SoluHub mounts the portal in three layers:
//   - top-level auth and operational endpoints (/login, /logout, /health,
//     /accounts)
//   - solution-scoped views under /{solution} (clients, works, issues,
//     dashboard)
//   - the write API under /api
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := errorsfeature.NewErrorLogger(logger)
	db := deps.SoluHubMongoDatabase
	clk := clock.System()

	clientsHandler := clientsfeature.NewHandler(db, errLog, logger, clk, appCfg.SnapshotTTL)
	worksHandler := worksfeature.NewHandler(db, errLog, logger, clk)
	issuesHandler := issuesfeature.NewHandler(db, errLog, logger, clk)
	dashboardHandler := dashboardfeature.NewHandler(db, errLog, logger, clk)

	r := chi.NewRouter()

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.SoluHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication
	loginHandler := loginfeature.NewHandler(db, sessionMgr, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// Account administration
	accountsHandler := accountsfeature.NewHandler(db, errLog, logger)
	r.Mount("/accounts", accountsfeature.Routes(accountsHandler, sessionMgr))

	// Solution-scoped list views. The solution slug is part of the path
	// so each product line gets its own URLs.
	r.Route("/{solution}", func(sr chi.Router) {
		sr.Mount("/clients", clientsfeature.Routes(clientsHandler, sessionMgr))
		sr.Mount("/works", worksfeature.Routes(worksHandler, sessionMgr))
		sr.Mount("/issues", issuesfeature.Routes(issuesHandler, sessionMgr))
		sr.Mount("/dashboard", dashboardfeature.Routes(dashboardHandler, sessionMgr))
	})

	// Write API
	r.Route("/api", func(ar chi.Router) {
		ar.Mount("/clients", clientsfeature.APIRoutes(clientsHandler, sessionMgr))
		ar.Mount("/works", worksfeature.APIRoutes(worksHandler, sessionMgr))
		ar.Mount("/issues", issuesfeature.APIRoutes(issuesHandler, sessionMgr))
	})

	return r, nil
}
