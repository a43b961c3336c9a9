package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment.
type Config struct {
	Port               string
	DatabaseURL        string
	JWTSecret          string
	TokenExpiry        time.Duration
	TripAdvisorAPIKey  string
	TripAdvisorBaseURL string
	Env                string
}

// LoadConfig reads configuration from .env / environment variables.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	expiryHours := 72
	if raw := os.Getenv("TOKEN_EXPIRY_HOURS"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			expiryHours = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenExpiry:        time.Duration(expiryHours) * time.Hour,
		TripAdvisorAPIKey:  os.Getenv("TRIPADVISOR_API_KEY"),
		TripAdvisorBaseURL: getEnv("TRIPADVISOR_BASE_URL", "https://api.content.tripadvisor.com/api/v1"),
		Env:                getEnv("APP_ENV", "development"),
	}
}

// IsProduction reports whether error details should be hidden from clients.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
