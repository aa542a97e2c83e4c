package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	SessionDuration time.Duration

	// Preview catalog
	CatalogBaseURL string
	CatalogCountry string

	// Chart data exports
	ChartBaseURL string

	// Guest tokens
	JWTSecret string

	// Google OAuth
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	// Game summary emails (AWS SES)
	EmailEnabled bool
	EmailFrom    string
	AWSRegion    string
	AppBaseURL   string

	// Rate limiting
	RateLimitPerMinute int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DB_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./trackclash.db"),
		DatabaseURL:     getEnv("DB_URL", ""),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),
		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),

		CatalogBaseURL: getEnv("CATALOG_BASE_URL", "https://itunes.apple.com"),
		CatalogCountry: getEnv("CATALOG_COUNTRY", "us"),

		ChartBaseURL: getEnv("CHART_BASE_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),

		EmailEnabled: getBool("EMAIL_ENABLED", false),
		EmailFrom:    getEnv("EMAIL_FROM", ""),
		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 60),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
