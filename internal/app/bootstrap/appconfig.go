// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers framework-level settings (ports, TLS,
// logging, CORS, body limits); AppConfig carries everything specific to
// AulaHub. Values come from config files, AULAHUB_* environment
// variables, or command-line flags, merged in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token configuration
	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	// CourseCatalog is the fixed list of offerable course names seeded
	// idempotently on every start.
	CourseCatalog []string

	// Admin seed account. Blank email disables seeding.
	AdminName     string
	AdminEmail    string
	AdminPassword string
}
