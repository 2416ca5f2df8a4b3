package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  The struct is built once at startup and
// passed explicitly to the components that need it; nothing else in the
// codebase reads the environment for these values.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // symmetric secret used to sign JWTs (HS512)
	JWTIssuer      string // iss claim stamped on and required from tokens
	JWTAudience    string // aud claim stamped on and required from tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing
	DropDBOnRun    bool   // when true, truncate all tables and reseed at startup
	RabbitURL      string // AMQP broker URL for sale events (optional)
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),                   // environment (dev/test/prod)
		Port:           must("APP_PORT"),                  // port to bind the HTTP server
		DBUser:         must("DB_USER"),                   // database user
		DBPass:         os.Getenv("DB_PASS"),              // database password (empty allowed)
		DBHost:         must("DB_HOST"),                   // database host
		DBPort:         must("DB_PORT"),                   // database port
		DBName:         must("DB_NAME"),                   // database name
		JWTSecret:      must("JWT_SECRET"),                // secret used for signing JWTs
		JWTIssuer:      must("JWT_ISSUER"),                // token issuer
		JWTAudience:    must("JWT_AUDIENCE"),              // token audience
		AccessTTLMin:   intOr("ACCESS_TOKEN_TTL_MIN", 60), // TTL for access tokens in minutes
		RefreshTTLDays: intOr("REFRESH_TOKEN_TTL_DAYS", 7),
		BcryptCost:     intOr("BCRYPT_COST", 10),
		DropDBOnRun:    os.Getenv("DROP_DB_ON_RUN") == "1", // destructive reseed flag
		RabbitURL:      os.Getenv("RABBITMQ_URL"),          // empty disables event publishing
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an optional integer environment variable, falling back
// to def when unset.  A value that is present but not a valid integer is
// a configuration mistake and aborts startup.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
