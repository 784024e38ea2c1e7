// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config is read once at startup from the environment.
type Config struct {
	// Backend
	APIBase         string
	AuthBase        string
	HTTPTimeout     time.Duration
	RateLimit       float64
	RateBurst       int
	BreakerFailures uint32
	BreakerTimeout  time.Duration

	// Storage
	Storage     string
	Profile     string
	SQLitePath  string
	DatabaseURL string

	// Redis
	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int
	CatalogTTL    time.Duration

	// Pricing
	CartShippingFee float64
	CartTaxRate     float64
	CheckoutHomeFee float64
	CheckoutTaxRate float64

	// Sandbox
	SandboxPort      string
	SandboxJWTSecret string
	SandboxTokenTTL  time.Duration

	LogLevel string
}

// Load reads Config from the environment. Variables required by the
// selected storage driver must be set.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Storage = strings.ToLower(getEnvString("STOREFRONT_STORAGE", StorageSQLite))
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	var missing []string
	switch cfg.Storage {
	case StorageSQLite:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		return nil, fmt.Errorf("unknown STOREFRONT_STORAGE %q (want sqlite, postgres or redis)", cfg.Storage)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	cfg.APIBase = strings.TrimRight(getEnvString("STOREFRONT_API_BASE", "https://api.hellonature.in/api"), "/")
	cfg.AuthBase = strings.TrimRight(getEnvString("STOREFRONT_AUTH_BASE", "https://beauty-backend1.onrender.com/api"), "/")
	cfg.HTTPTimeout = getEnvDuration("STOREFRONT_HTTP_TIMEOUT", 15*time.Second)
	cfg.RateLimit = getEnvFloat("STOREFRONT_RATE_LIMIT", 10)
	cfg.RateBurst = getEnvInt("STOREFRONT_RATE_BURST", 5)
	cfg.BreakerFailures = uint32(getEnvInt("STOREFRONT_BREAKER_FAILURES", 5))
	cfg.BreakerTimeout = getEnvDuration("STOREFRONT_BREAKER_TIMEOUT", 30*time.Second)

	cfg.Profile = getEnvString("STOREFRONT_PROFILE", "default")
	cfg.SQLitePath = getEnvString("STOREFRONT_SQLITE_PATH", "storefront.db")

	cfg.RedisUsername = os.Getenv("REDIS_USERNAME")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.CatalogTTL = getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute)

	cfg.CartShippingFee = getEnvFloat("CART_SHIPPING_FEE", 99)
	cfg.CartTaxRate = getEnvFloat("CART_TAX_RATE", 0.18)
	cfg.CheckoutHomeFee = getEnvFloat("CHECKOUT_HOME_FEE", 5.99)
	cfg.CheckoutTaxRate = getEnvFloat("CHECKOUT_TAX_RATE", 0.08)

	cfg.SandboxPort = getEnvString("SANDBOX_PORT", "8080")
	cfg.SandboxJWTSecret = getEnvString("SANDBOX_JWT_SECRET", "sandbox-secret")
	cfg.SandboxTokenTTL = getEnvDuration("SANDBOX_TOKEN_TTL", 120*time.Hour)

	cfg.LogLevel = getEnvString("STOREFRONT_LOG_LEVEL", "info")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
