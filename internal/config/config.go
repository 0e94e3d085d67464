package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Service settings
	BaseURL string
	APIKey  string

	// HTTP client settings
	HTTPTimeout  time.Duration
	MaxRetries   int
	RetryBackoff time.Duration

	// quote-watch settings
	PollInterval time.Duration
	RateLimitRPS float64
}

func Load() *Config {
	return &Config{
		// Service
		BaseURL: getEnv("JUPITER_BASE_URL", "https://quote-api.jup.ag/v6"),
		APIKey:  getEnv("JUPITER_API_KEY", ""),

		// HTTP
		HTTPTimeout:  getDurationEnv("HTTP_TIMEOUT", 30*time.Second),
		MaxRetries:   getIntEnv("MAX_RETRIES", 5),
		RetryBackoff: getDurationEnv("RETRY_BACKOFF", 2*time.Second),

		// Polling
		PollInterval: getDurationEnv("POLL_INTERVAL", 30*time.Second),
		RateLimitRPS: getFloatEnv("RATE_LIMIT_RPS", 1),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntEnv(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getFloatEnv(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
