package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPAddr      = ":8080"
	defaultJWTSecret     = "change-me-jwt-secret"
	defaultJWTAccessTTL  = "24h"
	defaultDispatchMode  = "sync"
	defaultSlotInterval  = "30"
	defaultTravelPadding = "30"
	defaultPendingTTL    = "15m"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string

	JWTSecret    string
	JWTAccessTTL time.Duration

	// DispatchMode selects how booking side effects run: "sync" executes
	// them inline, "async" publishes them on the in-process event bus.
	DispatchMode string

	CalendarBaseURL string

	SlotIntervalMin  int
	TravelPaddingMin int
	PendingTTL       time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.DispatchMode = strings.ToLower(strings.TrimSpace(getEnv("DISPATCH_MODE", defaultDispatchMode)))
	cfg.CalendarBaseURL = strings.TrimSpace(os.Getenv("CALENDAR_BASE_URL"))

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.PendingTTL, err = parseDurationEnv("PENDING_TTL", defaultPendingTTL)
	if err != nil {
		return nil, err
	}
	cfg.SlotIntervalMin, err = parseIntEnv("SLOT_INTERVAL_MIN", defaultSlotInterval)
	if err != nil {
		return nil, err
	}
	cfg.TravelPaddingMin, err = parseIntEnv("TRAVEL_PADDING_MIN", defaultTravelPadding)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.DispatchMode != "sync" && cfg.DispatchMode != "async" {
		return fmt.Errorf("DISPATCH_MODE must be sync or async")
	}
	if cfg.SlotIntervalMin <= 0 {
		return fmt.Errorf("SLOT_INTERVAL_MIN must be > 0")
	}
	if cfg.TravelPaddingMin < 0 {
		return fmt.Errorf("TRAVEL_PADDING_MIN must be >= 0")
	}
	if cfg.PendingTTL <= 0 {
		return fmt.Errorf("PENDING_TTL must be > 0")
	}
	if isProdLike(cfg.AppEnv) && cfg.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

func isProdLike(env string) bool {
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
