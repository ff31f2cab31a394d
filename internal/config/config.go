// Package config loads runtime configuration from environment variables.
package config

import (
	"log"
	"os"
)

// Config holds the core settings the server needs at startup. Rate
// limiting and response caching carry their own structs in this
// package since they have many knobs of their own.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	DBUser        string // database username
	DBPass        string // database password (optional)
	DBHost        string // database host address
	DBPort        string // database port number
	DBName        string // database name
	JWTSecret     string // shared secret for verifying access tokens
	HorizonMonths int    // how many whole months of availability to compute
	BcryptCost    int    // bcrypt cost for hashing invite tokens
}

// Load reads configuration from the environment. Required variables
// are enforced by must(); missing values abort startup with a fatal
// log message. The availability horizon and bcrypt cost have working
// defaults so a minimal .env boots the server.
func Load() Config {
	return Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		DBUser:        must("DB_USER"),
		DBPass:        os.Getenv("DB_PASS"), // empty allowed
		DBHost:        must("DB_HOST"),
		DBPort:        must("DB_PORT"),
		DBName:        must("DB_NAME"),
		JWTSecret:     must("JWT_SECRET"),
		HorizonMonths: envInt("HORIZON_MONTHS", 3),
		BcryptCost:    envInt("BCRYPT_COST", 12),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}
