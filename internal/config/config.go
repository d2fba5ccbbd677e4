package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// StorageMemory and StorageMySQL are the accepted APP_STORAGE values.
const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database credentials are only required when the
// MySQL backend is selected; the in-memory backend needs none of them.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	Storage       string // storage backend: "memory" or "mysql"
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	PublishEvents bool   // publish film.liked events to the broker
}

// Load reads configuration values from environment variables and returns a
// Config.  Variables that are required for the selected storage backend are
// enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	cfg := Config{
		Env:           getenv("APP_ENV", "dev"),           // environment (dev/test/prod)
		Port:          getenv("APP_PORT", "8080"),         // port to bind the HTTP server
		Storage:       getenv("APP_STORAGE", StorageMemory), // which backend to run on
		PublishEvents: getenv("QUEUE_ENABLED", "false") == "true",
	}
	if cfg.Storage != StorageMemory && cfg.Storage != StorageMySQL {
		log.Fatalf("invalid APP_STORAGE: %q (want %q or %q)", cfg.Storage, StorageMemory, StorageMySQL)
	}
	if cfg.Storage == StorageMySQL {
		cfg.DBUser = must("DB_USER")      // database user
		cfg.DBPass = os.Getenv("DB_PASS") // database password (empty allowed)
		cfg.DBHost = must("DB_HOST")      // database host
		cfg.DBPort = must("DB_PORT")      // database port
		cfg.DBName = must("DB_NAME")      // database name
	}
	return cfg
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
