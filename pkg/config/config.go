// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
)

// Source types for raw application records.
const (
	SourceFile      = "file"
	SourceSnowflake = "snowflake"
)

// Config represents the application configuration
type Config struct {
	// Where raw records come from
	Source    string
	InputPath string

	// Where the cleaned table goes
	OutputPath string

	// Optional Postgres persistence: cleaned table and/or audit trail
	PersistCleaned bool
	AuditEnabled   bool

	// Database connections (loaded only when needed)
	Snowflake *SnowflakeConfig
	Postgres  *PostgresConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Source:         getEnv("SOURCE", SourceFile),
		InputPath:      getEnv("INPUT_PATH", "data/raw_credit_applications.json"),
		OutputPath:     getEnv("OUTPUT_PATH", "data/cleaned_credit_applications.csv"),
		PersistCleaned: getEnvAsBool("PERSIST_CLEANED", false),
		AuditEnabled:   getEnvAsBool("AUDIT_ENABLED", false),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	if cfg.Source == SourceSnowflake {
		snowConfig, err := LoadSnowflakeConfig()
		if err != nil {
			return nil, errors.New("failed to load Snowflake configuration: " + err.Error())
		}
		cfg.Snowflake = snowConfig
	}

	if cfg.PersistCleaned || cfg.AuditEnabled {
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	switch c.Source {
	case SourceFile:
		if c.InputPath == "" {
			return errors.New("input path is required for the file source")
		}
	case SourceSnowflake:
		if c.Snowflake == nil {
			return errors.New("snowflake configuration is required")
		}
	default:
		return errors.New("source must be 'file' or 'snowflake'")
	}

	if c.OutputPath == "" {
		return errors.New("output path is required")
	}

	if (c.PersistCleaned || c.AuditEnabled) && c.Postgres == nil {
		return errors.New("postgreSQL configuration is required")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
