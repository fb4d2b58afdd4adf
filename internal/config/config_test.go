package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.UseMemoryQueue)
	assert.Equal(t, 700000, cfg.LuxuryPriceThreshold)
	assert.Equal(t, 50000, cfg.LowBudgetCutoff)
	assert.Equal(t, 3, cfg.ShortlistSize)
	assert.Equal(t, time.Hour, cfg.BookingSlotDuration)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LUXURY_PRICE_THRESHOLD", "850000")
	t.Setenv("BOOKING_SLOT_DURATION", "30m")
	t.Setenv("USE_MEMORY_QUEUE", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 850000, cfg.LuxuryPriceThreshold)
	assert.Equal(t, 30*time.Minute, cfg.BookingSlotDuration)
	assert.False(t, cfg.UseMemoryQueue)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("LUXURY_PRICE_THRESHOLD", "not-a-number")
	t.Setenv("BOOKING_SLOT_DURATION", "soon")
	t.Setenv("REDIS_TLS", "maybe")

	cfg := Load()

	assert.Equal(t, 700000, cfg.LuxuryPriceThreshold)
	assert.Equal(t, time.Hour, cfg.BookingSlotDuration)
	assert.False(t, cfg.RedisTLS)
}
