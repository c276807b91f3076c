package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnv             = "development"
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultSessionLifetime = 12 * time.Hour
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Env             string
	AdminEmail      string
	AdminPassword   string
	DBPath          string
	Port            string
	LogLevel        string
	SessionLifetime time.Duration
	CookieSecure    bool

	invalid []string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Env:             os.Getenv("APP_ENV"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		DBPath:          os.Getenv("DB_PATH"),
		Port:            os.Getenv("PORT"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		SessionLifetime: defaultSessionLifetime,
	}

	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
	if raw := os.Getenv("SESSION_LIFETIME"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			cfg.SessionLifetime = d
		} else {
			cfg.invalid = append(cfg.invalid, "SESSION_LIFETIME")
		}
	}
	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			cfg.invalid = append(cfg.invalid, "COOKIE_SECURE")
		}
		cfg.CookieSecure = secure
	}

	return cfg
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.Env) {
	case "dev", "development", "local":
		return true
	}
	return false
}

// Missing lists recommended variables that are not set.
func (c Config) Missing() []string {
	var missing []string
	if c.AdminEmail == "" {
		missing = append(missing, "ADMIN_EMAIL")
	}
	if c.AdminPassword == "" {
		missing = append(missing, "ADMIN_PASSWORD")
	}
	return missing
}

// Invalid lists variables that were set but could not be parsed; their
// defaults are used instead.
func (c Config) Invalid() []string {
	return c.invalid
}
