package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultServerPort = 8080
	defaultSessionTTL = 14 * 24 * time.Hour
	minSecretLength   = 16
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL   string
	SessionSecret string
	ServerPort    int
	LogLevel      slog.Level

	SessionTTL          time.Duration
	SessionSecureCookie bool
	BcryptCost          int

	CORSAllowedOrigins []string
	LoginRateLimit     float64
	LoginRateBurst     int

	// Export archive bucket (Cloudflare R2). Either all fields are set or none.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// ExportStorageEnabled reports whether the export archive bucket is configured.
func (c *Config) ExportStorageEnabled() bool {
	return c.R2BucketName != ""
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	secret := getenv("SESSION_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("SESSION_SECRET environment variable is not set")
	}
	if len(secret) < minSecretLength {
		return nil, fmt.Errorf("SESSION_SECRET must be at least %d bytes long", minSecretLength)
	}

	port := defaultServerPort
	if portStr := getenv("SERVER_PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		port = p
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	level := slog.LevelInfo
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		if err := level.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", lvl, err)
		}
	}

	ttl := defaultSessionTTL
	if ttlStr := getenv("SESSION_TTL"); ttlStr != "" {
		d, err := time.ParseDuration(ttlStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL environment variable: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", d)
		}
		ttl = d
	}

	secure := false
	if s := getenv("SESSION_SECURE_COOKIE"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_SECURE_COOKIE environment variable: %w", err)
		}
		secure = b
	}

	cost := bcrypt.DefaultCost
	if costStr := getenv("BCRYPT_COST"); costStr != "" {
		c, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST environment variable: %w", err)
		}
		if c < bcrypt.MinCost || c > bcrypt.MaxCost {
			return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c)
		}
		cost = c
	}

	rateLimit := 1.0
	if s := getenv("LOGIN_RATE_LIMIT"); s != "" {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("LOGIN_RATE_LIMIT must be a positive number, got %q", s)
		}
		rateLimit = f
	}
	rateBurst := 5
	if s := getenv("LOGIN_RATE_BURST"); s != "" {
		b, err := strconv.Atoi(s)
		if err != nil || b <= 0 {
			return nil, fmt.Errorf("LOGIN_RATE_BURST must be a positive integer, got %q", s)
		}
		rateBurst = b
	}

	cfg := &Config{
		DatabaseURL:         dbURL,
		SessionSecret:       secret,
		ServerPort:          port,
		LogLevel:            level,
		SessionTTL:          ttl,
		SessionSecureCookie: secure,
		BcryptCost:          cost,
		CORSAllowedOrigins:  splitList(getenv("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:      rateLimit,
		LoginRateBurst:      rateBurst,
		R2AccountID:         getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:       getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:   getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:        getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:     getenv("R2_PUBLIC_BASE_URL"),
	}

	r2 := []string{cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName, cfg.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return nil, fmt.Errorf("R2 export storage is partially configured: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
