package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	ServerPort           string
	AppEnv               string
	LogLevel             string
	JWTSecret            string
	JWTExpirationHours   int64
	InitialAdminUsername string
}

// Load reads application configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		AppEnv:               getEnv("APP_ENV", "development"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		JWTSecret:            os.Getenv("JWT_SECRET_KEY"),
		InitialAdminUsername: os.Getenv("INITIAL_ADMIN_USERNAME"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	// Tokens live for 7 days unless overridden
	rawHours := getEnv("JWT_EXPIRATION_HOURS", "168")
	hours, err := strconv.ParseInt(rawHours, 10, 64)
	if err != nil || hours <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: must be a positive integer", rawHours)
	}
	cfg.JWTExpirationHours = hours

	return cfg, nil
}

// Production reports whether the app runs in production mode (secure cookies,
// release-mode router).
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
