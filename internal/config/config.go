package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application configuration
type Config struct {
	Port          string
	DBConn        string
	LogLevel      string
	JWTSecret     string
	EncryptionKey []byte
	Location      *time.Location

	// CronSecret guards the alert trigger endpoint. Empty disables the check.
	CronSecret   string
	CronSchedule string

	CommissionRate decimal.Decimal

	GeocodeURL       string
	GeocodeUserAgent string
	GeocodeCacheTTL  time.Duration
	GeocodeCacheSize int
	RedisAddr        string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertEmailTo string
}

// NewConfig loads configuration from environment variables, reading a .env file first when present
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		DBConn:           getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=rentals sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:        getEnv("JWT_SECRET", "secret"),
		CronSecret:       getEnv("CRON_SECRET", ""),
		CronSchedule:     getEnv("CRON_SCHEDULE", "0 7 * * *"),
		GeocodeURL:       getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org/search"),
		GeocodeUserAgent: getEnv("GEOCODE_USER_AGENT", "rental-service/1.0"),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnv("SMTP_PORT", "587"),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SenderEmail:      getEnv("SENDER_EMAIL", "alerts@rentals.local"),
		AlertEmailTo:     getEnv("ALERT_EMAIL_TO", ""),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	key, err := hex.DecodeString(getEnv("ENCRYPTION_KEY", "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6"))
	if err != nil {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be hex: %w", err)
	}
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must decode to 16, 24 or 32 bytes, got %d", len(key))
	}
	cfg.EncryptionKey = key

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	rate, err := decimal.NewFromString(getEnv("COMMISSION_RATE", "0"))
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("COMMISSION_RATE must be a fraction between 0 and 1")
	}
	cfg.CommissionRate = rate

	ttl, err := time.ParseDuration(getEnv("GEOCODE_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODE_CACHE_TTL: %w", err)
	}
	cfg.GeocodeCacheTTL = ttl

	size, err := strconv.Atoi(getEnv("GEOCODE_CACHE_SIZE", "1000"))
	if err != nil || size <= 0 {
		return nil, fmt.Errorf("GEOCODE_CACHE_SIZE must be a positive integer")
	}
	cfg.GeocodeCacheSize = size

	return cfg, nil
}

// EmailEnabled reports whether alert digests can be sent
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.AlertEmailTo != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
