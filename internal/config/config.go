// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	JWTSecret   string

	// Remote tracking backend
	BackendURL     string
	BackendTimeout time.Duration

	// Optional stores (empty disables)
	DatabaseURL    string
	RedisURL       string
	MigrationsPath string

	// Activity log pool and schema
	DBMaxConns       int
	DBMinConns       int
	DBConnIdle       time.Duration
	MigrationsTable  string
	MigrationsRepair bool

	// Lifetimes
	FormTTL           time.Duration
	DropdownTTL       time.Duration
	ActivityRetention time.Duration

	// Per-user limit on requests that reach the backend
	RateLimitRPS   float64
	RateLimitBurst int

	FrontendURL string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("API_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),

		BackendURL:     getEnv("BACKEND_URL", "http://localhost:5000/api"),
		BackendTimeout: time.Duration(getEnvInt("BACKEND_TIMEOUT", 30)) * time.Second,

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./internal/db/migrations"),

		DBMaxConns:       getEnvInt("DB_MAX_CONNS", 8),
		DBMinConns:       getEnvInt("DB_MIN_CONNS", 1),
		DBConnIdle:       time.Duration(getEnvInt("DB_CONN_IDLE_MINUTES", 15)) * time.Minute,
		MigrationsTable:  getEnv("MIGRATIONS_TABLE", "console_migrations"),
		MigrationsRepair: getEnv("MIGRATIONS_REPAIR_DIRTY", "false") == "true",

		FormTTL:           time.Duration(getEnvInt("FORM_TTL_MINUTES", 60)) * time.Minute,
		DropdownTTL:       time.Duration(getEnvInt("DROPDOWN_TTL_MINUTES", 30)) * time.Minute,
		ActivityRetention: time.Duration(getEnvInt("ACTIVITY_RETENTION_DAYS", 90)) * 24 * time.Hour,

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
