package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// DefaultJWTSecret is only suitable for local development.
const DefaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// DefaultEssentialCategories are the expense categories counted as essential outflows.
var DefaultEssentialCategories = []string{
	"Rent", "Utilities", "Groceries", "Transportation", "Insurance", "Healthcare", "Education", "Debt Repayment",
}

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       slog.Level

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	TaxRate                    decimal.Decimal
	EssentialExpenseCategories []string
	AuditTrailEnabled          bool

	RecurringEnabled  bool
	RecurringSchedule string

	AuthRateLimit      string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "2160h")
	v.SetDefault("JWT_ISSUER", "finance-tracker")
	v.SetDefault("TAX_RATE", "0.25")
	v.SetDefault("ESSENTIAL_EXPENSE_CATEGORIES", strings.Join(DefaultEssentialCategories, ","))
	v.SetDefault("AUDIT_TRAIL_ENABLED", false)
	v.SetDefault("RECURRING_ENABLED", false)
	v.SetDefault("RECURRING_SCHEDULE", "@daily")
	v.SetDefault("AUTH_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Actual environment variables override .env values and defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTIssuer:          v.GetString("JWT_ISSUER"),
		AuditTrailEnabled:  v.GetBool("AUDIT_TRAIL_ENABLED"),
		RecurringEnabled:   v.GetBool("RECURRING_ENABLED"),
		RecurringSchedule:  v.GetString("RECURRING_SCHEDULE"),
		AuthRateLimit:      v.GetString("AUTH_RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = DefaultJWTSecret
	}
	if cfg.JWTSecret == DefaultJWTSecret {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	var err error
	if cfg.JWTExpiryDuration, err = time.ParseDuration(v.GetString("JWT_EXPIRY_DURATION")); err != nil || cfg.JWTExpiryDuration <= 0 {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION %q", v.GetString("JWT_EXPIRY_DURATION"))
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(v.GetString("SHUTDOWN_TIMEOUT")); err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v.GetString("SHUTDOWN_TIMEOUT"), err)
	}

	cfg.TaxRate, err = decimal.NewFromString(v.GetString("TAX_RATE"))
	if err != nil || cfg.TaxRate.IsNegative() || cfg.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("invalid TAX_RATE %q: must be a number between 0 and 1", v.GetString("TAX_RATE"))
	}

	cfg.EssentialExpenseCategories = splitList(v.GetString("ESSENTIAL_EXPENSE_CATEGORIES"))

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v.GetString("LOG_LEVEL"), err)
	}

	return cfg, nil
}

// EssentialCategorySet returns the essential categories as a lookup set.
func (c *Config) EssentialCategorySet() map[string]bool {
	set := make(map[string]bool, len(c.EssentialExpenseCategories))
	for _, cat := range c.EssentialExpenseCategories {
		set[cat] = true
	}
	return set
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
