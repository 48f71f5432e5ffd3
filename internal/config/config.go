package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Ledger thresholds, in minor currency units. CashLowThreshold is the
	// fixed floor below which a cash-low alert fires; DefaultLowThreshold
	// seeds the user-configurable total-low setting. Both are currency
	// sensitive, hence configurable rather than hardcoded.
	CashLowThreshold    int64
	DefaultLowThreshold int64

	// DefaultCurrency seeds the settings row at profile setup.
	DefaultCurrency string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "banklar"),
		DBPassword: getEnv("DB_PASSWORD", "banklar"),
		DBName:     getEnv("DB_NAME", "banklar"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		CashLowThreshold:    getEnvInt64("CASH_LOW_THRESHOLD", 10000),
		DefaultLowThreshold: getEnvInt64("DEFAULT_LOW_THRESHOLD", 20000),
		DefaultCurrency:     getEnv("DEFAULT_CURRENCY", "COP"),
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt64 retrieves an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
