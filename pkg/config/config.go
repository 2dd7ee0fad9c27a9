package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Environment     string
	LogLevel        string
	DatabaseHost    string
	DatabasePort    int
	DatabaseUser    string
	DatabasePass    string
	DatabaseName    string
	DatabaseSSLMode string
	RedisURL        string
	ContactCacheTTL time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	dbPort, err := strconv.Atoi(getEnv("DATABASE_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_PORT: %w", err)
	}

	cacheTTLSeconds, err := strconv.Atoi(getEnv("CONTACT_CACHE_TTL_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid CONTACT_CACHE_TTL_SECONDS: %w", err)
	}

	return &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabaseHost:    getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:    dbPort,
		DatabaseUser:    getEnv("DATABASE_USER", "parogest"),
		DatabasePass:    getEnv("DATABASE_PASSWORD", "dev"),
		DatabaseName:    getEnv("DATABASE_NAME", "parogest"),
		DatabaseSSLMode: getEnv("DATABASE_SSLMODE", "disable"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		ContactCacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
