package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIRONMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	// All variables
	GO_ENV       string
	DB_DRIVER    string
	DB_PATH      string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	PORT         int
	// JWT Configuration (tokens are issued by the identity provider)
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// HTTP
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
	// Logging
	LOG_LEVEL string
	LOG_FILE  string
	// Background jobs
	CRON_ENABLED bool
	// Response cache lifetimes
	ACCOMMODATION_CACHE_TTL time.Duration
	BURSARY_CACHE_TTL       time.Duration
	TAXONOMY_CACHE_TTL      time.Duration
}

// IsProduction reports whether GO_ENV selects production behaviour
func (e *EnvironmentVariable) IsProduction() bool {
	return strings.EqualFold(e.GO_ENV, "production")
}

func Get() (*EnvironmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	rateLimit, err := strconv.Atoi(os.Getenv("RATE_LIMIT_REQUESTS"))
	if err != nil {
		rateLimit = 100
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_DRIVER:    getEnvOrDefault("DB_DRIVER", "postgres"),
		DB_PATH:      getEnvOrDefault("DB_PATH", "catalog.db"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnvOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getEnvOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		PORT:         port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getEnvOrDefault("JWT_ISSUER", "umami-tube"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// HTTP
		ALLOWED_ORIGINS:     getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		RATE_LIMIT_REQUESTS: rateLimit,
		// Logging
		LOG_LEVEL: getEnvOrDefault("LOG_LEVEL", "info"),
		LOG_FILE:  os.Getenv("LOG_FILE"),
		// Cron is enabled unless explicitly turned off
		CRON_ENABLED: os.Getenv("CRON_ENABLED") != "false",
		// Cache
		ACCOMMODATION_CACHE_TTL: getDurationOrDefault("ACCOMMODATION_CACHE_TTL", 15*time.Minute),
		BURSARY_CACHE_TTL:       getDurationOrDefault("BURSARY_CACHE_TTL", 5*time.Minute),
		TAXONOMY_CACHE_TTL:      getDurationOrDefault("TAXONOMY_CACHE_TTL", time.Hour),
	}

	return envVariables, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationOrDefault accepts Go duration strings such as "15m" or "1h"
func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}
