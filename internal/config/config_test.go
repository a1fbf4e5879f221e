package config

import (
	"os"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"API_BASE_URL", "API_TIMEOUT_SECONDS", "SESSION_DB_PATH", "STUB_ADDRESS", "JWT_SECRET"} {
		if v, ok := os.LookupEnv(key); ok {
			t.Setenv(key, v)
			os.Unsetenv(key)
		}
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	clearEnv(t)
	if _, err := Load(); err == nil {
		t.Fatalf("Load() succeeded without JWT_SECRET")
	}
}

func TestLoad_WithSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Auth.JWTSecret != "super-secret" {
		t.Errorf("JWTSecret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL default = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds default = %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Session.Path != "session.db" {
		t.Errorf("Session.Path default = %q", cfg.Session.Path)
	}
}

func TestLoadWithDefaults_FillsDevSecret(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadWithDefaults()
	if err != nil {
		t.Fatalf("LoadWithDefaults() error: %v", err)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatalf("dev secret not filled in")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("API_BASE_URL", "https://api.edrone.example")
	t.Setenv("API_TIMEOUT_SECONDS", "30")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.BaseURL != "https://api.edrone.example" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d", cfg.API.TimeoutSeconds)
	}
}

func TestLoad_InvalidTimeoutFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("API_TIMEOUT_SECONDS", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.API.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want default 15", cfg.API.TimeoutSeconds)
	}
}

func TestString_MasksSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "super-secret")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s := cfg.String(); strings.Contains(s, "super-secret") {
		t.Errorf("String() leaked secret: %s", s)
	}
}
