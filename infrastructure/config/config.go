// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// AWS configuration
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Persistence backend: "dynamodb" or "memory"
	StorageBackend string

	// Feature flags
	EnableEventBridge bool
	EnableCORS        bool

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),
		DynamoDBTable: getEnv("TABLE_NAME", getEnv("DYNAMODB_TABLE", "journaline")),
		EventBusName:  getEnv("EVENT_BUS_NAME", "journaline-events"),

		StorageBackend: getEnv("STORAGE_BACKEND", "dynamodb"),

		EnableEventBridge: getEnvBool("ENABLE_EVENTBRIDGE", false),
		EnableCORS:        getEnvBool("ENABLE_CORS", true),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "dynamodb", "memory":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be dynamodb or memory, got %q", c.StorageBackend)
	}

	if c.Environment == "production" {
		if c.StorageBackend != "dynamodb" {
			return fmt.Errorf("STORAGE_BACKEND must be dynamodb in production")
		}
		if c.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required")
		}
		if c.EnableEventBridge && c.EventBusName == "" {
			return fmt.Errorf("EVENT_BUS_NAME is required when EventBridge is enabled")
		}
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
