// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, cache sizing, notifier pool, and messaging credentials.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// LINE Bot Configuration
	LineChannelToken  string
	LineChannelSecret string

	// LIFF deep-link identifiers (subscription form, search form,
	// booking form, share page)
	LiffIDSubscribe string
	LiffIDSearch    string
	LiffIDBooking   string
	LiffIDShare     string

	// AgentUserID receives a push notification for every new booking.
	// Optional: missing value is logged at startup, not fatal.
	AgentUserID string

	// Firestore Configuration
	FirebaseProjectID       string
	FirebaseCredentialsJSON string // inline service-account JSON
	FirebaseCredentialsFile string // path to service-account file

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Sentry (Better Stack) error tracking
	SentryToken       string
	SentryHost        string
	SentryEnvironment string

	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Detail cache: hot listing lookups keyed by listing id
	DetailCacheSize int
	DetailCacheTTL  time.Duration

	// Loading-indicator notifier pool
	LoadingWorkers   int
	LoadingQueueSize int

	// Global outbound messaging rate limit (requests per second)
	GlobalRateLimitRPS float64
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	cfg := load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadSeed reads configuration for offline tools that only need the
// store. Messaging credentials are not required.
func LoadSeed() (*Config, error) {
	cfg := load()
	if cfg.FirebaseCredentialsJSON == "" && cfg.FirebaseCredentialsFile == "" {
		return nil, errors.New("config validation failed: FIREBASE_CREDENTIALS or FIREBASE_CREDENTIALS_FILE is required")
	}
	return cfg, nil
}

func load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	return &Config{
		LineChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		LineChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),

		LiffIDSubscribe: getEnv("LIFF_ID_SUBSCRIBE", ""),
		LiffIDSearch:    getEnv("LIFF_ID_SEARCH", ""),
		LiffIDBooking:   getEnv("LIFF_ID_BOOKING", ""),
		LiffIDShare:     getEnv("LIFF_ID_SHARE", ""),

		AgentUserID: getEnv("AGENT_LINE_USER_ID", ""),

		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		SentryToken:       getEnv("SENTRY_TOKEN", ""),
		SentryHost:        getEnv("SENTRY_HOST", "errors.betterstack.com"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),

		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DetailCacheSize: getIntEnv("DETAIL_CACHE_SIZE", 256),
		DetailCacheTTL:  getDurationEnv("DETAIL_CACHE_TTL", 30*time.Second),

		LoadingWorkers:   getIntEnv("LOADING_WORKERS", 2),
		LoadingQueueSize: getIntEnv("LOADING_QUEUE_SIZE", 64),

		GlobalRateLimitRPS: getFloatEnv("GLOBAL_RATE_LIMIT_RPS", 100.0),
	}
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.LineChannelToken == "" {
		errs = append(errs, errors.New("LINE_CHANNEL_ACCESS_TOKEN is required"))
	}
	if c.LineChannelSecret == "" {
		errs = append(errs, errors.New("LINE_CHANNEL_SECRET is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.FirebaseCredentialsJSON == "" && c.FirebaseCredentialsFile == "" {
		errs = append(errs, errors.New("FIREBASE_CREDENTIALS or FIREBASE_CREDENTIALS_FILE is required"))
	}
	if c.DetailCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("DETAIL_CACHE_SIZE must be positive, got %d", c.DetailCacheSize))
	}
	if c.DetailCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("DETAIL_CACHE_TTL must be positive, got %v", c.DetailCacheTTL))
	}
	if c.LoadingWorkers <= 0 {
		errs = append(errs, fmt.Errorf("LOADING_WORKERS must be positive, got %d", c.LoadingWorkers))
	}
	if c.LoadingQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("LOADING_QUEUE_SIZE must be positive, got %d", c.LoadingQueueSize))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LiffURL builds a LIFF deep link from a LIFF app id.
// Returns empty string when the id is not configured.
func LiffURL(liffID string) string {
	if liffID == "" {
		return ""
	}
	return "https://liff.line.me/" + liffID
}

// SubscribeURL returns the deep link to the subscription-condition form.
func (c *Config) SubscribeURL() string { return LiffURL(c.LiffIDSubscribe) }

// SearchURL returns the deep link to the listing search form.
func (c *Config) SearchURL() string { return LiffURL(c.LiffIDSearch) }

// BookingURL returns the deep link to the booking form.
func (c *Config) BookingURL() string { return LiffURL(c.LiffIDBooking) }

// ShareURL returns the deep link to the share page for a listing.
func (c *Config) ShareURL(listingID string) string {
	base := LiffURL(c.LiffIDShare)
	if base == "" {
		return ""
	}
	return base + "?doc_id=" + listingID
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
