package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                 = "8080"
	defaultBackendURL           = "http://localhost:8000"
	defaultBackendTimeout       = "15s"
	defaultAppOrigin            = "http://localhost:5173"
	defaultJWTSecret            = "change-me-jwt-secret"
	defaultSessionIdleTTL       = "2h"
	defaultCacheStaleAfter      = "5s"
	defaultSessionSweepInterval = "5m"
	defaultSnapshotRetention    = "720h"
)

type Config struct {
	AppEnv string
	Port   string

	BackendURL     string
	BackendTimeout time.Duration

	// AppOrigin is the SPA origin notification action URLs are checked against.
	AppOrigin          string
	CORSAllowedOrigins []string

	JWTSecret   string
	DatabaseURL string

	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration
	CacheStaleAfter      time.Duration
	SnapshotRetention    time.Duration
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(getEnv("BACKEND_URL", defaultBackendURL)), "/")
	cfg.AppOrigin = strings.TrimRight(strings.TrimSpace(getEnv("APP_ORIGIN", defaultAppOrigin)), "/")
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	var err error
	cfg.BackendTimeout, err = parseDurationEnv("BACKEND_TIMEOUT", defaultBackendTimeout)
	if err != nil {
		return nil, err
	}

	cfg.SessionIdleTTL, err = parseDurationEnv("SESSION_IDLE_TTL", defaultSessionIdleTTL)
	if err != nil {
		return nil, err
	}

	cfg.SessionSweepInterval, err = parseDurationEnv("SESSION_SWEEP_INTERVAL", defaultSessionSweepInterval)
	if err != nil {
		return nil, err
	}

	cfg.CacheStaleAfter, err = parseDurationEnv("CACHE_STALE_AFTER", defaultCacheStaleAfter)
	if err != nil {
		return nil, err
	}

	cfg.SnapshotRetention, err = parseDurationEnv("SNAPSHOT_RETENTION", defaultSnapshotRetention)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config: env=%s backend=%s origin=%s snapshots=%t", cfg.AppEnv, cfg.BackendURL, cfg.AppOrigin, cfg.DatabaseURL != "")

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func (c *Config) IsProd() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if err := validateOrigin("BACKEND_URL", cfg.BackendURL); err != nil {
		return err
	}
	if err := validateOrigin("APP_ORIGIN", cfg.AppOrigin); err != nil {
		return err
	}
	if cfg.BackendTimeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT must be > 0")
	}
	if cfg.SessionIdleTTL < 0 {
		return fmt.Errorf("SESSION_IDLE_TTL must be >= 0")
	}
	if cfg.SessionSweepInterval <= 0 {
		return fmt.Errorf("SESSION_SWEEP_INTERVAL must be > 0")
	}
	if cfg.CacheStaleAfter < 0 {
		return fmt.Errorf("CACHE_STALE_AFTER must be >= 0")
	}
	// Other users' writes never invalidate a session; only age does.
	if cfg.CacheStaleAfter == 0 && !isDevLike(cfg.AppEnv) {
		return fmt.Errorf("CACHE_STALE_AFTER=0 is only allowed in dev")
	}
	if cfg.SnapshotRetention <= 0 {
		return fmt.Errorf("SNAPSHOT_RETENTION must be > 0")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if !strings.HasPrefix(cfg.AppOrigin, "https://") {
			return fmt.Errorf("in prod/release APP_ORIGIN must use https")
		}
	}

	return nil
}

func validateOrigin(name, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, value)
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isDevLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "dev" || env == "development" || env == "local" || env == "test"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimRight(strings.TrimSpace(part), "/"); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
