package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	URL      string
	Driver   string // "postgres" or "sqlite3"
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

type Config struct {
	Port      string
	BaseURL   string
	LogLevel  string
	RedisAddr string
	CacheTTL  time.Duration
	AuthLimit RateLimitConfig
	DB        DatabaseConfig
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the environment only.
func FromEnv() (*Config, error) {
	cacheTTL, err := getDuration("CACHE_TTL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	window, err := getDuration("AUTH_RATE_WINDOW", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	limit, err := getInt("AUTH_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}

	port := getEnv("PORT", "5000")
	cfg := &Config{
		Port:      port,
		BaseURL:   getEnv("BASE_URL", "http://localhost:"+port),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  cacheTTL,
		AuthLimit: RateLimitConfig{Limit: limit, Window: window},
		DB: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Driver:   getEnv("DB_DRIVER", "postgres"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			Name:     os.Getenv("POSTGRES_DB"),
		},
	}
	return cfg, nil
}

// Validate reports the first setting the server cannot start without.
func (c *Config) Validate() error {
	if c.DB.DSN() == "" {
		return errors.New("DATABASE_URL or POSTGRES_USER/POSTGRES_DB must be set")
	}
	if c.AuthLimit.Limit <= 0 {
		return errors.New("AUTH_RATE_LIMIT must be positive")
	}
	if c.AuthLimit.Window <= 0 {
		return errors.New("AUTH_RATE_WINDOW must be positive")
	}
	return nil
}

// DSN prefers DATABASE_URL and otherwise assembles a postgres DSN from the
// POSTGRES_* variables.
func (db *DatabaseConfig) DSN() string {
	if db.URL != "" {
		return db.URL
	}
	switch db.Driver {
	case "postgres":
		if db.User == "" || db.Name == "" {
			return ""
		}
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			db.Host, db.Port, db.User, db.Password, db.Name)
	case "sqlite3":
		if db.Name == "" {
			return ""
		}
		return db.Name + ".db"
	default:
		return ""
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
