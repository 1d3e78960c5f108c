package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	BaseURL         string
	FrontendURL     string
	OpenAIKey       string
	EmbedModel      string
	EmbedBaseURL    string
	EmbedDimensions int
	EnableHSTS      bool
	RateLimitRate   string
	RateLimitStore  string
	RedisURL        string
	ServerDebugMode bool
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		FrontendURL:     getEnv("FRONTEND_URL", "http://localhost:3000"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		EmbedModel:      getEnv("EMBED_MODEL", ""),
		EmbedBaseURL:    getEnv("EMBED_BASE_URL", ""),
		EmbedDimensions: getEnvInt("EMBED_DIMENSIONS", 384),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		RateLimitRate:   getEnv("RATE_LIMIT_RATE", "5-S"),
		RateLimitStore:  getEnv("RATE_LIMIT_STORE", "memory"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.RateLimitStore != "memory" && cfg.RateLimitStore != "redis" {
		return nil, fmt.Errorf("RATE_LIMIT_STORE must be 'memory' or 'redis', got %q", cfg.RateLimitStore)
	}

	if cfg.RateLimitStore == "redis" && cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required when RATE_LIMIT_STORE is 'redis'")
	}

	if cfg.EmbedDimensions <= 0 {
		return nil, fmt.Errorf("EMBED_DIMENSIONS must be positive, got %d", cfg.EmbedDimensions)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
