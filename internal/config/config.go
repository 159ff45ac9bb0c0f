package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	Port               string
	DatabaseURL        string
	Env                string
	Debug              bool
	LogLevel           string
	LogFormat          string
	CorsAllowedOrigins []string

	// AuthToken is a static admin API token, accepted as a bearer credential.
	AuthToken         string
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	TokenTTL          time.Duration
	LoginRateLimit    int

	RedisURL string
	CacheTTL time.Duration

	MaxBodyBytes int64
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AuthToken:          getEnv("AUTH_TOKEN", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		AdminUsername:      getEnv("ADMIN_USERNAME", ""),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
	}

	var errs []error
	var err error
	if cfg.Debug, err = strconv.ParseBool(getEnv("DEBUG", "false")); err != nil {
		errs = append(errs, fmt.Errorf("DEBUG: %w", err))
	}
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("TOKEN_TTL", "24h")); err != nil {
		errs = append(errs, fmt.Errorf("TOKEN_TTL: %w", err))
	}
	if cfg.CacheTTL, err = time.ParseDuration(getEnv("CACHE_TTL", "5m")); err != nil {
		errs = append(errs, fmt.Errorf("CACHE_TTL: %w", err))
	}
	if cfg.LoginRateLimit, err = strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "5")); err != nil {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_LIMIT: %w", err))
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "10485760"), 10, 64); err != nil {
		errs = append(errs, fmt.Errorf("MAX_BODY_BYTES: %w", err))
	}

	if cfg.AdminPasswordHash == "" {
		if plain := getEnv("ADMIN_PASSWORD", ""); plain != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
			if err != nil {
				errs = append(errs, fmt.Errorf("ADMIN_PASSWORD: %w", err))
			}
			cfg.AdminPasswordHash = string(hash)
		}
	}

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks cross-field rules.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.IsProduction() && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required in production")
	}
	hasAdmin := c.AdminUsername != "" && c.AdminPasswordHash != ""
	if c.JWTSecret != "" && !hasAdmin {
		return errors.New("JWT_SECRET requires ADMIN_USERNAME and ADMIN_PASSWORD(_HASH)")
	}
	if hasAdmin && c.JWTSecret == "" {
		return errors.New("ADMIN_USERNAME requires JWT_SECRET")
	}
	if c.LoginRateLimit <= 0 {
		return errors.New("LOGIN_RATE_LIMIT must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_BYTES must be positive")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat)
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// LoginEnabled reports whether an admin credential pair is configured.
func (c Config) LoginEnabled() bool {
	return c.JWTSecret != "" && c.AdminUsername != "" && c.AdminPasswordHash != ""
}

// AuthEnabled reports whether mutating requests need a credential.
func (c Config) AuthEnabled() bool {
	return c.AuthToken != "" || c.LoginEnabled()
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
