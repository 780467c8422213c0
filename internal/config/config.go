// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"identity_backend/internal/feature/identity/usecase"
	"identity_backend/internal/platform/db"
)

// Config is the service configuration.
type Config struct {
	HTTPAddr      string
	JWTSecret     string
	JWTExpiration time.Duration
	Lockout       usecase.LockoutPolicy
	DB            db.Config

	// AuthRatePerMinute caps /signup and /login per client IP. Zero disables the limit.
	AuthRatePerMinute int
}

// Load reads .env files (when present) and then the process environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	jwtExpiration, err := durationEnv("JWT_EXPIRATION", time.Hour)
	if err != nil {
		return Config{}, err
	}
	maxFailed, err := intEnv("LOCKOUT_MAX_FAILED", 5)
	if err != nil {
		return Config{}, err
	}
	lockoutDuration, err := durationEnv("LOCKOUT_DURATION", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}
	authRate, err := intEnv("AUTH_RATE_PER_MINUTE", 10)
	if err != nil {
		return Config{}, err
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	return Config{
		HTTPAddr:      httpAddr,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiration: jwtExpiration,
		Lockout: usecase.LockoutPolicy{
			MaxFailedAttempts: maxFailed,
			Duration:          lockoutDuration,
		},
		DB:                db.LoadConfigFromEnv(),
		AuthRatePerMinute: authRate,
	}, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a non-negative integer", key, v)
	}
	return n, nil
}
