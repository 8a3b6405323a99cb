package config

import (
	"os"
	"time"

	"clubhub-service/internal/pkg/token"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	DatabaseURL string

	// Token signing
	Token token.Config

	// Admin bootstrap
	AdminEmail    string
	AdminPassword string
}

// Load loads environment variables into AppConfig.
//
// The fallback secret and admin password exist so a dev checkout boots; a
// production deployment must supply JWT_SECRET and ADMIN_PASSWORD.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/clubhub?sslmode=disable"),

		Token: token.Config{
			Secret: []byte(getEnv("JWT_SECRET", "dev-only-insecure-secret")),
			Issuer: "clubhub",
			TTL:    getEnvDuration("JWT_TTL", 720*time.Hour), // 30 days
		},

		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@codingclub.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Admin@123!"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
