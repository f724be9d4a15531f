package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Environment string

	DatabasePath   string
	MigrationsPath string

	// RedisAddr empty means the in-process cache backs the rate limiter.
	RedisAddr     string
	RedisPassword string

	// FirestoreProject empty means the in-memory remote collection.
	FirestoreProject string

	JWTSecret string

	// AlertsAuthorized mirrors the device alert permission prompt. When
	// false the alert center drops every request silently.
	AlertsAuthorized bool
	AlertTick        time.Duration

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool

	MetricsPort  string
	OTLPEndpoint string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Environment: "development",

		DatabasePath:   "done.db",
		MigrationsPath: "db/migrations",

		JWTSecret: "development-secret",

		AlertsAuthorized: true,
		AlertTick:        15 * time.Second,

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/auth": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/todos": {
				Requests: 100,
				Window:   time.Minute,
			},
		},

		EnforceHTTPS: false,

		MetricsPort:  "9090",
		OTLPEndpoint: "localhost:4317",
	}
}

// LoadConfig layers the environment over the defaults. A missing .env file
// is not an error.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "reason", err)
	}

	cfg := GetDefaultConfig()

	cfg.Environment = envOr("APP_ENV", cfg.Environment)
	cfg.DatabasePath = envOr("DATABASE_PATH", cfg.DatabasePath)
	cfg.MigrationsPath = envOr("MIGRATIONS_PATH", cfg.MigrationsPath)
	cfg.RedisAddr = envOr("REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = envOr("REDIS_PASSWORD", cfg.RedisPassword)
	cfg.FirestoreProject = envOr("FIRESTORE_PROJECT", cfg.FirestoreProject)
	cfg.JWTSecret = envOr("JWT_SECRET", cfg.JWTSecret)
	cfg.MetricsPort = envOr("METRICS_PORT", cfg.MetricsPort)
	cfg.OTLPEndpoint = envOr("OTLP_ENDPOINT", cfg.OTLPEndpoint)

	cfg.AlertsAuthorized = boolEnvOr("ALERTS_AUTHORIZED", cfg.AlertsAuthorized)
	cfg.RateLimitEnabled = boolEnvOr("RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.EnforceHTTPS = boolEnvOr("ENFORCE_HTTPS", cfg.EnforceHTTPS)

	if tick := os.Getenv("ALERT_TICK_SECONDS"); tick != "" {
		if seconds, err := strconv.Atoi(tick); err == nil && seconds > 0 {
			cfg.AlertTick = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func boolEnvOr(key string, fallback bool) bool {
	value := os.Getenv(key)

	if value == "" {
		return fallback
	}

	return value == "true" || value == "1"
}
