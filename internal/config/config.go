package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Stub    StubConfig
	Auth    AuthConfig
}

// APIConfig contains REST backend settings.
type APIConfig struct {
	BaseURL        string // backend base URL, e.g. "https://api.edrone.example"
	TimeoutSeconds int    // HTTP transport timeout
}

// SessionConfig contains persistent session store settings.
type SessionConfig struct {
	Path string // SQLite session store file path
}

// StubConfig contains development stub server settings.
type StubConfig struct {
	Address string // stub server listen address (e.g., ":8080")
}

// AuthConfig contains token settings used by the stub server.
type AuthConfig struct {
	JWTSecret string // JWT signing secret
}

// Load loads configuration from environment variables (and an optional .env
// file) with sensible defaults. The JWT secret is required.
func Load() (*Config, error) {
	cfg := loadFromEnv()
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}
	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	cfg := loadFromEnv()
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func loadFromEnv() *Config {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	timeout, err := getEnvInt("API_TIMEOUT_SECONDS", 15)
	if err != nil {
		timeout = 15
	}
	return &Config{
		API: APIConfig{
			BaseURL:        getEnv("API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: timeout,
		},
		Session: SessionConfig{
			Path: getEnv("SESSION_DB_PATH", "session.db"),
		},
		Stub: StubConfig{
			Address: getEnv("STUB_ADDRESS", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{API: %s, Session: %s, Stub: %s, Auth: *** (masked) ***}",
		c.API.BaseURL, c.Session.Path, c.Stub.Address)
}
