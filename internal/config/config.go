package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration.
// It is populated from environment variables (a .env file is loaded first in main).
type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Slug       SlugConfig
	Moderation ModerationConfig
	Fetcher    FetcherConfig
	Worker     WorkerConfig
}

type AppConfig struct {
	Name               string
	Environment        string // development, staging, production
	Port               string
	Version            string
	LogLevel           string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// SlugConfig bounds the place slug probe loop.
type SlugConfig struct {
	MaxAttempts int
	LockTTL     time.Duration
}

type ModerationConfig struct {
	APIKey string // empty disables the X-Moderator-Key check
}

// FetcherConfig drives trace metadata extraction.
type FetcherConfig struct {
	Timeout      time.Duration
	MaxBytes     int64
	UserAgent    string
	AllowPrivate bool // tests and local development only
}

type WorkerConfig struct {
	Concurrency     int
	OrphanSweepCron string
	OrphanMinAge    time.Duration
	HealthAddr      string
}

// Load reads the config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:               getEnv("APP_NAME", "Storymap API"),
			Environment:        getEnv("APP_ENV", "development"),
			Port:               getEnv("APP_PORT", "8080"),
			Version:            getEnv("APP_VERSION", "1.0.0"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "storymap"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Slug: SlugConfig{
			MaxAttempts: getEnvInt("SLUG_MAX_ATTEMPTS", 50),
			LockTTL:     getEnvDuration("SLUG_LOCK_TTL", 5*time.Second),
		},
		Moderation: ModerationConfig{
			APIKey: getEnv("MODERATION_API_KEY", ""),
		},
		Fetcher: FetcherConfig{
			Timeout:      getEnvDuration("FETCH_TIMEOUT", 10*time.Second),
			MaxBytes:     int64(getEnvInt("FETCH_MAX_BYTES", 5*1024*1024)),
			UserAgent:    getEnv("FETCH_USER_AGENT", "storymap-trace-fetcher/1.0"),
			AllowPrivate: getEnvBool("FETCH_ALLOW_PRIVATE", false),
		},
		Worker: WorkerConfig{
			Concurrency:     getEnvInt("WORKER_CONCURRENCY", 10),
			OrphanSweepCron: getEnv("ORPHAN_SWEEP_CRON", "*/15 * * * *"),
			OrphanMinAge:    getEnvDuration("ORPHAN_MIN_AGE", 10*time.Minute),
			HealthAddr:      getEnv("WORKER_HEALTH_ADDR", ":9999"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that are unsafe to run.
func (c *Config) Validate() error {
	if c.Slug.MaxAttempts < 1 {
		return fmt.Errorf("SLUG_MAX_ATTEMPTS must be positive")
	}
	if c.Fetcher.MaxBytes < 1 {
		return fmt.Errorf("FETCH_MAX_BYTES must be positive")
	}

	if c.App.Environment == "production" {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Moderation.APIKey == "" {
			return fmt.Errorf("MODERATION_API_KEY must be set in production")
		}
		if c.Fetcher.AllowPrivate {
			return fmt.Errorf("FETCH_ALLOW_PRIVATE cannot be enabled in production")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
