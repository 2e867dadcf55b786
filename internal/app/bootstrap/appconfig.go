// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration: WAFFLE's CoreConfig covers
// framework settings like HTTP ports, TLS, logging level and CORS.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// API key authentication for the learning client and admin tooling.
	// When empty, every API request is rejected.
	APIKey string

	// Super-admin seeding configuration. The super-admin role can only be
	// created at startup; the runtime role rules never grant it.
	SeedSuperAdminEmail string
	SeedSuperAdminName  string
}
