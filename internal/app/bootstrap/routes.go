// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authfeature "github.com/aulahub/aulahub/internal/app/features/auth"
	coursesfeature "github.com/aulahub/aulahub/internal/app/features/courses"
	groupsfeature "github.com/aulahub/aulahub/internal/app/features/groups"
	healthfeature "github.com/aulahub/aulahub/internal/app/features/health"
	notificationsfeature "github.com/aulahub/aulahub/internal/app/features/notifications"
	studentsfeature "github.com/aulahub/aulahub/internal/app/features/students"
	sysauth "github.com/aulahub/aulahub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. The whole API is JSON under /api;
// register and login are public, everything else sits behind the bearer
// middleware, with admin-only operations gated by the authz policy
// table inside the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens := sysauth.NewManager(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.JWTTTL)

	r := chi.NewRouter()

	// Liveness for load balancers and the client's polling loop.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authfeature.NewHandler(deps.MongoDatabase, tokens, logger)
	coursesHandler := coursesfeature.NewHandler(deps.MongoDatabase, logger)
	groupsHandler := groupsfeature.NewHandler(deps.MongoDatabase, logger)
	studentsHandler := studentsfeature.NewHandler(deps.MongoDatabase, logger)
	notificationsHandler := notificationsfeature.NewHandler(deps.MongoDatabase, logger)

	r.Route("/api", func(api chi.Router) {
		// Public: credential issuance.
		api.Mount("/", authfeature.Routes(authHandler))

		// Everything below requires a valid bearer token.
		api.Group(func(protected chi.Router) {
			protected.Use(tokens.RequireAuth)
			protected.Mount("/courses", coursesfeature.Routes(coursesHandler))
			protected.Mount("/groups", groupsfeature.Routes(groupsHandler))
			protected.Get("/all-groups", groupsHandler.ListAll)
			protected.Mount("/students", studentsfeature.Routes(studentsHandler))
			protected.Mount("/notifications", notificationsfeature.Routes(notificationsHandler))
		})
	})

	return r, nil
}
