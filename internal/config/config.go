package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gastro-insights/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr string
	Env      string

	// PostgreSQL
	DatabaseURL  string
	DBMaxConns   int32
	QueryTimeout time.Duration

	// Redis (optional; enables the shared OTP store when set)
	RedisAddr string
	RedisPass string
	RedisDB   int

	// JWT
	JWT jwt.Config

	// Auth
	BcryptCost int
	OTPTTL     time.Duration

	// Telegram
	TelegramBotToken string

	// Cookies
	CookieSecure bool

	// Initial admin seed
	AdminUsername string
	AdminPassword string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr: getEnv("HTTP_ADDR", ":8000"),
		Env:      getEnv("APP_ENV", "development"),

		DatabaseURL:  buildDatabaseURL(),
		DBMaxConns:   int32(getEnvInt("DB_MAX_CONNS", 10)),
		QueryTimeout: getEnvSeconds("DB_QUERY_TIMEOUT", 30),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASS", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		JWT: jwt.Config{
			Secret:     getEnv("JWT_SECRET", ""),
			Issuer:     "gastro-insights",
			AccessTTL:  getEnvSeconds("ACCESS_TOKEN_TTL", 900),
			RefreshTTL: getEnvSeconds("REFRESH_TOKEN_TTL", 604800),
			TempTTL:    5 * time.Minute,
		},

		BcryptCost: getEnvInt("BCRYPT_COST", 12),
		OTPTTL:     getEnvSeconds("OTP_TTL", 300),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),

		CookieSecure: getEnvBool("COOKIE_SECURE", false),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

// IsDevelopment reports whether detailed error output is allowed.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// buildDatabaseURL prefers DATABASE_URL, falling back to discrete DB_* vars.
func buildDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASS", ""),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "gastro"),
	)
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.ToLower(v) == "true"
	}
	return fallback
}
