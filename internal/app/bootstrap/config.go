// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// defaultCatalog is the original fixed course list; override with the
// course_catalog key.
const defaultCatalog = "MATEMATICAS,ESPAÑOL,INGLES,COMPUTACION,ARTE,MUSICA"

// appConfigKeys defines the configuration keys for AulaHub, loadable from
// config files, AULAHUB_* environment variables, or --flags.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "aulahub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HMAC key for bearer tokens (must be strong in production)"},
	{Name: "jwt_issuer", Default: "aulahub", Desc: "Issuer claim for bearer tokens"},
	{Name: "jwt_ttl", Default: "1h", Desc: "Bearer token lifetime (e.g. 1h, 30m)"},

	{Name: "course_catalog", Default: defaultCatalog, Desc: "Comma-separated list of offerable course names"},

	{Name: "admin_name", Default: "Administrator", Desc: "Display name for the seeded admin account"},
	{Name: "admin_email", Default: "", Desc: "Email of the seeded admin account (blank disables seeding)"},
	{Name: "admin_password", Default: "", Desc: "Initial password for the seeded admin account"},
}

// LoadConfig loads WAFFLE core config and app-specific config. It runs
// before any backend is connected, so startup can fail fast on bad
// values.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "AULAHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),
		JWTIssuer: appValues.String("jwt_issuer"),
		JWTTTL:    appValues.Duration("jwt_ttl", time.Hour),

		CourseCatalog: splitCatalog(appValues.String("course_catalog")),

		AdminName:     appValues.String("admin_name"),
		AdminEmail:    appValues.String("admin_email"),
		AdminPassword: appValues.String("admin_password"),
	}
	return coreCfg, appCfg, nil
}

func splitCatalog(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ValidateConfig enforces invariants that involve both configs before any
// connection is attempted.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.CourseCatalog) == 0 {
		return fmt.Errorf("course_catalog must name at least one course")
	}
	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		return fmt.Errorf("admin_email is set but admin_password is empty")
	}
	if coreCfg.Env == "prod" && strings.HasPrefix(appCfg.JWTSecret, "dev-only") {
		return fmt.Errorf("jwt_secret must be changed for production")
	}
	return nil
}
