package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	defaultAccessSecret  = "dev-access-secret-change-in-production"
	defaultRefreshSecret = "dev-refresh-secret-change-in-production"
)

type Config struct {
	Port          string
	Env           string
	DatabaseDSN   string
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	BcryptCost    int
}

func Load() Config {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/repfit?parseTime=true"),
		AccessSecret:  getEnv("JWT_ACCESS_SECRET", defaultAccessSecret),
		RefreshSecret: getEnv("JWT_REFRESH_SECRET", defaultRefreshSecret),
		AccessExpiry:  getDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		RefreshExpiry: getDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		BcryptCost:    getInt("BCRYPT_COST", 12),
	}

	if cfg.Env == "production" {
		if cfg.AccessSecret == defaultAccessSecret || cfg.RefreshSecret == defaultRefreshSecret {
			slog.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set in production environment")
			os.Exit(1)
		}
	}

	// A leaked access token must never be able to mint refresh tokens.
	if cfg.AccessSecret == cfg.RefreshSecret {
		slog.Error("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration in environment, using fallback", "key", key, "fallback", fallback)
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("invalid integer in environment, using fallback", "key", key, "fallback", fallback)
	}
	return fallback
}
