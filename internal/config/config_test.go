package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var allKeys = []string{
	"PORT", "BASE_URL", "LOG_LEVEL", "REDIS_ADDR", "CACHE_TTL",
	"AUTH_RATE_LIMIT", "AUTH_RATE_WINDOW", "DATABASE_URL", "DB_DRIVER",
	"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want 5000", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.LogLevel != "info" || cfg.DB.Driver != "postgres" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v", cfg.CacheTTL)
	}
	if cfg.AuthLimit.Limit != 5 || cfg.AuthLimit.Window != 15*time.Minute {
		t.Errorf("AuthLimit = %+v", cfg.AuthLimit)
	}
	if err := cfg.Validate(); err == nil {
		t.Errorf("Validate should fail without a database DSN")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_URL", "https://boards.example")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/boards")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "1m")
	t.Setenv("AUTH_RATE_LIMIT", "10")
	t.Setenv("AUTH_RATE_WINDOW", "1h")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if cfg.Port != "8080" || cfg.BaseURL != "https://boards.example" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.DB.DSN() != "postgres://u:p@db/boards" {
		t.Errorf("DSN = %q", cfg.DB.DSN())
	}
	if cfg.CacheTTL != time.Minute || cfg.AuthLimit.Limit != 10 || cfg.AuthLimit.Window != time.Hour {
		t.Errorf("unexpected parsed values: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"CACHE_TTL", "soon"},
		{"AUTH_RATE_WINDOW", "10"},
		{"AUTH_RATE_LIMIT", "five"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		db   DatabaseConfig
		want string
	}{
		{"url wins", DatabaseConfig{URL: "x", Driver: "postgres", User: "u", Name: "n"}, "x"},
		{"postgres parts", DatabaseConfig{Driver: "postgres", Host: "h", Port: "1", User: "u", Password: "p", Name: "n"},
			"host=h port=1 user=u password=p dbname=n sslmode=disable"},
		{"postgres incomplete", DatabaseConfig{Driver: "postgres", Host: "h"}, ""},
		{"sqlite", DatabaseConfig{Driver: "sqlite3", Name: "boards"}, "boards.db"},
		{"unknown driver", DatabaseConfig{Driver: "mysql", Name: "n"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.db.DSN(); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=7000\nDATABASE_URL=from-file\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Chdir(dir)

	// godotenv never overrides variables that are present, even when empty.
	os.Unsetenv("PORT")
	os.Unsetenv("DATABASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "7000" || cfg.DB.DSN() != "from-file" {
		t.Errorf("unexpected config from .env: %+v", cfg)
	}
}

func TestLoad_NoDotEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("missing .env must not be an error: %v", err)
	}
}
