package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the service. Every environment
// variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Upstream game backend
	Boerse BoerseConfig

	// Snapshot cache
	Redis RedisConfig

	// Results archive (optional)
	Database DatabaseConfig

	// Refresh cadence
	Refresh RefreshConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// BoerseConfig holds the Börsenspiel backend API configuration.
type BoerseConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// RedisConfig holds Redis configuration for the snapshot cache.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// DatabaseConfig holds PostgreSQL configuration for the results archive.
// URL may be empty; the results endpoints are then disabled.
type DatabaseConfig struct {
	URL string
}

// RefreshConfig holds the pipeline refresh intervals.
type RefreshConfig struct {
	Prices time.Duration // full refresh: players, prices, rates, history
	Rates  time.Duration // spot exchange rates only
}

// Load reads configuration from environment variables. This is the only
// function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		Boerse: BoerseConfig{
			BaseURL:        getEnv("BOERSE_BASE_URL", "https://boersenspiel-backend.onrender.com"),
			RequestTimeout: getEnvAsDuration("BOERSE_REQUEST_TIMEOUT", "30s"),
			RateLimitRPS:   getEnvAsFloat("BOERSE_RATE_LIMIT_RPS", 2),
			RateLimitBurst: getEnvAsInt("BOERSE_RATE_LIMIT_BURST", 4),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},

		Refresh: RefreshConfig{
			Prices: getEnvAsDuration("REFRESH_PRICES_INTERVAL", "20m"),
			Rates:  getEnvAsDuration("REFRESH_RATES_INTERVAL", "1h"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Boerse.BaseURL == "" {
		return fmt.Errorf("BOERSE_BASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Refresh.Prices <= 0 || c.Refresh.Rates <= 0 {
		return fmt.Errorf("refresh intervals must be positive")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{".env"}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
