package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	Notification NotificationConfig
	Dashboard    DashboardConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN              string
	MaxConns         int32
	MinConns         int32
	RunMigrations    bool
	ConnMaxIdleSec   int32
	ConnMaxLifeSec   int32
	FallbackToMemory bool
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level  string
	Format string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret        string
	TokenTTLMinutes  int
	BcryptCost       int
	SeedDefaultUsers bool
	DefaultPassword  string
}

// RateLimitConfig bounds request volume per client address.
type RateLimitConfig struct {
	WindowSeconds int
	APIMax        int
	LoginMax      int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	WebhookURL string
}

// DashboardConfig tunes the stats endpoint.
type DashboardConfig struct {
	CacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	maxConns := int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10))
	minConns := int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2))
	connMaxIdle := int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30))
	connMaxLife := int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300))

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "nexa-sys"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", getEnv("PORT", "5000")),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:              getEnv("POSTGRES_DSN", os.Getenv("DATABASE_URL")),
			MaxConns:         maxConns,
			MinConns:         minConns,
			RunMigrations:    getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec:   connMaxIdle,
			ConnMaxLifeSec:   connMaxLife,
			FallbackToMemory: getEnvAsBool("POSTGRES_FALLBACK_TO_MEMORY", true),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			JWTSecret:        getEnv("AUTH_JWT_SECRET", getEnv("JWT_SECRET", "dev-secret")),
			TokenTTLMinutes:  getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 8*60),
			BcryptCost:       getEnvAsInt("AUTH_BCRYPT_COST", 10),
			SeedDefaultUsers: getEnvAsBool("AUTH_SEED_DEFAULT_USERS", true),
			DefaultPassword:  getEnv("AUTH_DEFAULT_PASSWORD", "admin123"),
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 15*60),
			APIMax:        getEnvAsInt("RATE_LIMIT_API_MAX", 2000),
			LoginMax:      getEnvAsInt("RATE_LIMIT_LOGIN_MAX", 20),
		},
		Notification: NotificationConfig{
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
		Dashboard: DashboardConfig{
			CacheTTLSeconds: getEnvAsInt("DASHBOARD_CACHE_TTL_SECONDS", 30),
		},
	}

	if cfg.App.IsProduction() && cfg.Auth.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// TokenTTL returns the session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

// Window returns the rate limiting window.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowSeconds <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(r.WindowSeconds) * time.Second
}

// CacheTTL returns how long dashboard stats stay cached.
func (d DashboardConfig) CacheTTL() time.Duration {
	if d.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(d.CacheTTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
