package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Service API key for mutating endpoints
	APIKey string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Google Sheets
	SpreadsheetID      string
	ServiceAccountJSON string

	// Outbound sync
	SyncBatchSize int
	SyncInterval  time.Duration
	SyncTimeout   time.Duration
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
		Env:  getEnv("ENV", "development"),

		APIKey: getEnv("API_KEY", ""),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "ledgersync"),
		DBPassword: getEnv("DB_PASSWORD", "ledgersync"),
		DBName:     getEnv("DB_NAME", "ledgersync"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Google Sheets
		SpreadsheetID:      getEnv("GOOGLE_SHEET_ID", ""),
		ServiceAccountJSON: getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),

		SyncBatchSize: getEnvInt("SYNC_BATCH_SIZE", 100),
	}

	// The sync timeout must stay below the interval so scheduled runs never
	// overlap.
	config.SyncInterval = getEnvDuration("SYNC_INTERVAL", 2*time.Minute)
	config.SyncTimeout = getEnvDuration("SYNC_TIMEOUT", 90*time.Second)
	if config.SyncTimeout >= config.SyncInterval {
		log.Printf("Warning: SYNC_TIMEOUT %s >= SYNC_INTERVAL %s, clamping\n", config.SyncTimeout, config.SyncInterval)
		config.SyncTimeout = config.SyncInterval * 3 / 4
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

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvDuration retrieves a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
