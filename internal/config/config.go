package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// APIConfig configures the stats API binary.
type APIConfig struct {
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Season dataset
	DataPath string

	// Optional compare-response cache
	RedisURL string
	CacheTTL time.Duration
}

// DashboardConfig configures the dashboard binary.
type DashboardConfig struct {
	Port int
	Env  string

	// Stats API location
	APIBaseURL  string
	HTTPTimeout time.Duration
}

// LoadAPI loads the stats API configuration from environment variables.
// It returns an error if critical configuration is missing.
func LoadAPI() (*APIConfig, error) {
	cfg := &APIConfig{
		Port: getEnvInt("PORT", 8000),
		Env:  getEnv("ENV", "development"),

		RedisURL: getEnv("REDIS_URL", ""),
		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),
	}

	// CORS: allow the dashboard origin by default
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:8080,http://127.0.0.1:8080")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.DataPath, err = getEnvRequired("DATA_PATH"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDashboard loads the dashboard configuration from environment variables.
func LoadDashboard() (*DashboardConfig, error) {
	return &DashboardConfig{
		Port:        getEnvInt("PORT", 8080),
		Env:         getEnv("ENV", "development"),
		APIBaseURL:  getEnv("API_BASE_URL", "http://127.0.0.1:8000"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
