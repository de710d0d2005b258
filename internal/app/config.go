package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once in main and injected into the components that need it.
// Business logic never reads the environment directly.
type Config struct {
	Env           string
	Port          string
	PublicBaseURL string
	DBDSN         string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	VerifyTTL     time.Duration
	UseCookies    bool

	TaxPercent                 int64
	DeliveryFeeCents           int64
	FreeDeliveryThresholdCents int64
	ETAMinMinutes              int
	ETAMaxMinutes              int
	DefaultOrderStatus         string

	RateLimitWindow    time.Duration
	RateLimitMaxAuth   int
	RateLimitMaxGlobal int

	SMTPHost string
	SMTPPort string
	SMTPFrom string

	CORSOrigins []string
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getEnvInt64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

func getEnvBool(k string, d bool) bool {
	if v := os.Getenv(k); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return d
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func LoadConfig() Config {
	return Config{
		Env:           getEnv("APP_ENV", "dev"),
		Port:          getEnv("APP_PORT", "4000"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:4000"),
		DBDSN:         getEnv("DB_DSN", "host=localhost user=pizza password=pizza dbname=pizza port=5432 sslmode=disable"),

		AccessSecret:  getEnv("JWT_ACCESS_SECRET", "dev_access_secret_change_me"),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", "dev_refresh_secret_change_me"),
		AccessTTL:     time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 15)) * time.Minute,
		RefreshTTL:    time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour,
		VerifyTTL:     time.Duration(getEnvInt("VERIFY_TOKEN_TTL_HOURS", 24)) * time.Hour,
		UseCookies:    getEnvBool("USE_COOKIES", true),

		TaxPercent:                 getEnvInt64("TAX_PERCENT", 8),
		DeliveryFeeCents:           getEnvInt64("DELIVERY_FEE_CENTS", 2000),
		FreeDeliveryThresholdCents: getEnvInt64("FREE_DELIVERY_THRESHOLD_CENTS", 20000),
		ETAMinMinutes:              getEnvInt("ETA_MIN", 40),
		ETAMaxMinutes:              getEnvInt("ETA_MAX", 60),
		DefaultOrderStatus:         getEnv("PAYMENT_DEFAULT_STATUS", "paid"),

		RateLimitWindow:    time.Duration(getEnvInt("RATE_LIMIT_WINDOW_MIN", 15)) * time.Minute,
		RateLimitMaxAuth:   getEnvInt("RATE_LIMIT_MAX_AUTH", 100),
		RateLimitMaxGlobal: getEnvInt("RATE_LIMIT_MAX_GLOBAL", 300),

		SMTPHost: getEnv("SMTP_HOST", "localhost"),
		SMTPPort: getEnv("SMTP_PORT", "1025"),
		SMTPFrom: getEnv("SMTP_FROM", "no-reply@pizza.local"),

		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}
}
