// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	coursestore "github.com/aulahub/aulahub/internal/app/store/courses"
	userstore "github.com/aulahub/aulahub/internal/app/store/users"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time initialization after DB connections and schema
// setup, before the HTTP handler is built: it seeds the course catalog
// and, when configured, the admin account. Both steps are idempotent so
// every restart is safe.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	courses := coursestore.New(deps.MongoDatabase)
	if err := courses.Bootstrap(ctx, appCfg.CourseCatalog); err != nil {
		logger.Error("course catalog bootstrap failed", zap.Error(err))
		return err
	}
	logger.Info("course catalog ensured", zap.Int("courses", len(appCfg.CourseCatalog)))

	if appCfg.AdminEmail == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(appCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	users := userstore.New(deps.MongoDatabase)
	if err := users.EnsureAdmin(ctx, appCfg.AdminName, appCfg.AdminEmail, string(hash)); err != nil {
		logger.Error("admin seed failed", zap.Error(err))
		return err
	}
	logger.Info("admin account ensured", zap.String("email", appCfg.AdminEmail))
	return nil
}
