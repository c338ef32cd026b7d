package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// TenantSentinel is the placeholder scope used when no tenant could be
// resolved. Queries issued under it still run; they simply match nothing
// that carries a real tenant ID.
const TenantSentinel = "tenant-unresolved"

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Tenant scope resolution inputs. TenantID is the explicit value;
	// TenantProfile is the fallback derived from the deployment profile.
	TenantID      string
	TenantProfile string

	// CurrencyCode is the single bookkeeping currency; multi-currency
	// consolidation is out of scope.
	CurrencyCode string

	RateLimitPeriod   time.Duration
	RateLimitRequests int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("TENANT_ID", "")
	viper.SetDefault("TENANT_PROFILE", "")
	viper.SetDefault("CURRENCY_CODE", "USD")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 300)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.TenantID = viper.GetString("TENANT_ID")
	cfg.TenantProfile = viper.GetString("TENANT_PROFILE")
	cfg.CurrencyCode = viper.GetString("CURRENCY_CODE")

	rateLimitPeriodStr := viper.GetString("RATE_LIMIT_PERIOD")
	rateLimitPeriod, err := time.ParseDuration(rateLimitPeriodStr)
	if err != nil {
		rateLimitPeriod = time.Minute
		log.Printf("Warning: Invalid value for RATE_LIMIT_PERIOD ('%s'). Defaulting to %s.\n", rateLimitPeriodStr, rateLimitPeriod.String())
	}
	cfg.RateLimitPeriod = rateLimitPeriod
	cfg.RateLimitRequests = viper.GetInt64("RATE_LIMIT_REQUESTS")

	return cfg, nil
}

// ResolveTenantScope resolves the tenant scope once, at startup, with a fixed
// precedence: explicit TENANT_ID, then the profile-derived value, then the
// placeholder sentinel. The result is passed by reference into the core so no
// call site re-derives it.
func (c *Config) ResolveTenantScope() string {
	if c.TenantID != "" {
		return c.TenantID
	}
	if c.TenantProfile != "" {
		log.Printf("Warning: TENANT_ID not set. Deriving tenant scope from profile %q.\n", c.TenantProfile)
		return c.TenantProfile
	}
	log.Printf("Warning: no tenant scope configured. Using sentinel %q.\n", TenantSentinel)
	return TenantSentinel
}
