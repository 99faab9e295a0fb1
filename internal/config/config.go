package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	App      AppConfig
	Auth     AuthConfig
	Jobs     JobsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment string
	LogLevel    string
}

// AuthConfig holds session/token configuration
type AuthConfig struct {
	JWTSecret        string
	TokenExpiryHours int
}

// JobsConfig holds background job configuration
type JobsConfig struct {
	SessionCleanupSpec string // cron spec for expired-session cleanup
	StaleLeadSpec      string // cron spec for stale-lead sweep
	StaleLeadDays      int    // days before an uncontacted lead counts as stale
}

// New creates a new configuration instance
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: getEnvWithDefault("SERVER_HOST", "0.0.0.0"),
			Port: getEnvWithDefault("SERVER_PORT", "8090"),
		},
		Database: DatabaseConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: getEnvWithDefault("DB_PASSWORD", "postgres"),
			Name:     getEnvWithDefault("DB_NAME", "rento"),
			SSLMode:  getEnvWithDefault("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnvWithDefault("REDIS_HOST", "localhost"),
			Port:     getEnvWithDefault("REDIS_PORT", "6379"),
			Password: getEnvWithDefault("REDIS_PASSWORD", ""),
			DB:       getEnvAsIntWithDefault("REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL: getEnvWithDefault("NATS_URL", "nats://localhost:4222"),
		},
		App: AppConfig{
			Environment: getEnvWithDefault("APP_ENV", "development"),
			LogLevel:    getEnvWithDefault("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnvWithDefault("JWT_SECRET", "dev-secret-change-me"),
			TokenExpiryHours: getEnvAsIntWithDefault("TOKEN_EXPIRY_HOURS", 24),
		},
		Jobs: JobsConfig{
			SessionCleanupSpec: getEnvWithDefault("SESSION_CLEANUP_CRON", "@every 1h"),
			StaleLeadSpec:      getEnvWithDefault("STALE_LEAD_CRON", "@daily"),
			StaleLeadDays:      getEnvAsIntWithDefault("STALE_LEAD_DAYS", 30),
		},
	}
}

// Validate checks for configuration that must be explicitly provided
// outside development. Missing backend address or secret is a fatal
// startup condition.
func (c *Config) Validate() error {
	if c.App.Environment == "development" {
		return nil
	}
	if os.Getenv("DB_HOST") == "" || os.Getenv("DB_PASSWORD") == "" {
		return fmt.Errorf("DB_HOST and DB_PASSWORD must be set in %s", c.App.Environment)
	}
	if os.Getenv("JWT_SECRET") == "" {
		return fmt.Errorf("JWT_SECRET must be set in %s", c.App.Environment)
	}
	return nil
}

// getEnvWithDefault gets environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault gets environment variable as integer with default fallback
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
