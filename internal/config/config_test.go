package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, "0 7 * * *", cfg.CronSchedule)
	assert.Len(t, cfg.EncryptionKey, 32)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.True(t, cfg.CommissionRate.IsZero())
	assert.Equal(t, 24*time.Hour, cfg.GeocodeCacheTTL)
	assert.Equal(t, 1000, cfg.GeocodeCacheSize)
	assert.False(t, cfg.EmailEnabled())
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("COMMISSION_RATE", "0.08")
	t.Setenv("GEOCODE_CACHE_TTL", "1h")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("ALERT_EMAIL_TO", "office@example.com")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, "0.08", cfg.CommissionRate.String())
	assert.Equal(t, time.Hour, cfg.GeocodeCacheTTL)
	assert.True(t, cfg.EmailEnabled())
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"empty db conn":   {"DB_CONN", ""},
		"empty jwt":       {"JWT_SECRET", ""},
		"non hex key":     {"ENCRYPTION_KEY", "not-hex"},
		"short key":       {"ENCRYPTION_KEY", "abcd"},
		"unknown zone":    {"TIMEZONE", "Mars/Olympus"},
		"commission > 1":  {"COMMISSION_RATE", "1.5"},
		"bad ttl":         {"GEOCODE_CACHE_TTL", "a day"},
		"zero cache size": {"GEOCODE_CACHE_SIZE", "0"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TIMEZONE", "UTC")
			t.Setenv(kv[0], kv[1])

			_, err := NewConfig()

			assert.Error(t, err)
		})
	}
}
