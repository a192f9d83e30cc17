package config

import (
	"os"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage. When RedisURL is set, sessions are kept in redis
	// instead of in-process memory.
	RedisURL      string
	SessionSecret string // Used for encrypting cookies (min 32 chars)

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site branding
	SiteTitle string // env: SITE_TITLE, default: "QnA Links"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:           getEnv("ENV", "development"),
		ServerAddr:    getEnv("SERVER_ADDR", ":3000"),
		BaseURL:       getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/qnalinks?sslmode=disable"),
		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		TLSEnabled:    getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:   getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:    getEnv("TLS_KEY_FILE", ""),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),
		SiteTitle:     getEnv("SITE_TITLE", "QnA Links"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
