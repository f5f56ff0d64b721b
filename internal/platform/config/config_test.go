package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/finance")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/finance", cfg.DatabaseURL)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, 2160*time.Hour, cfg.JWTExpiryDuration)
	assert.True(t, decimal.RequireFromString("0.25").Equal(cfg.TaxRate))
	assert.Equal(t, DefaultEssentialCategories, cfg.EssentialExpenseCategories)
	assert.Equal(t, "@daily", cfg.RecurringSchedule)
	assert.Equal(t, "10-M", cfg.AuthRateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.AuditTrailEnabled)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY_DURATION", "1h")
	t.Setenv("TAX_RATE", "0.3")
	t.Setenv("ESSENTIAL_EXPENSE_CATEGORIES", "Rent, Groceries")
	t.Setenv("AUDIT_TRAIL_ENABLED", "true")
	t.Setenv("RECURRING_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.True(t, decimal.RequireFromString("0.3").Equal(cfg.TaxRate))
	assert.Equal(t, map[string]bool{"Rent": true, "Groceries": true}, cfg.EssentialCategorySet())
	assert.True(t, cfg.AuditTrailEnabled)
	assert.True(t, cfg.RecurringEnabled)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"tax rate above one", "TAX_RATE", "1.5"},
		{"tax rate not a number", "TAX_RATE", "abc"},
		{"bad expiry", "JWT_EXPIRY_DURATION", "forever"},
		{"bad log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
