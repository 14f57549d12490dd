package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort        int
	DatabasePath      string
	JWTSecret         string
	TokenTTL          time.Duration
	MinPasswordLength int
	CORSOrigin        string
	AppEnv            string // "development" or "production"

	// Seed identity for the out-of-band administrator account.
	AdminEmail     string
	AdminPassword  string
	AdminFirstName string
	AdminLastName  string
}

// Load loads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	ttlHours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL_HOURS: %q", os.Getenv("TOKEN_TTL_HOURS"))
	}

	minPasswordLen, err := strconv.Atoi(getEnv("MIN_PASSWORD_LENGTH", "6"))
	if err != nil || minPasswordLen < 1 {
		return nil, fmt.Errorf("invalid MIN_PASSWORD_LENGTH: %q", os.Getenv("MIN_PASSWORD_LENGTH"))
	}

	secret := getEnv("JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return &Config{
		ServerPort:        port,
		DatabasePath:      getEnv("DATABASE_PATH", "./alumni.db"),
		JWTSecret:         secret,
		TokenTTL:          time.Duration(ttlHours) * time.Hour,
		MinPasswordLength: minPasswordLen,
		CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:3000"),
		AppEnv:            getEnv("APP_ENV", "development"),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminFirstName:    getEnv("ADMIN_FIRST_NAME", "Admin"),
		AdminLastName:     getEnv("ADMIN_LAST_NAME", "User"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
