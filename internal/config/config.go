package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration, read from the environment.
type Config struct {
	ListenAddr string        `env:"RUNCOACH_ADDR" envDefault:":8080"`
	LogLevel   string        `env:"RUNCOACH_LOG_LEVEL" envDefault:"info"`
	CacheTTL   time.Duration `env:"RUNCOACH_CACHE_TTL" envDefault:"5m"`

	Strava StravaConfig `envPrefix:"STRAVA_"`
}

// StravaConfig holds Strava API credentials. The refresh token is the
// athlete's long-lived grant; interactive OAuth is the host runtime's
// concern, not this server's.
type StravaConfig struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	RefreshToken string        `env:"REFRESH_TOKEN"`
	Timeout      time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}

// Validate checks that required fields are present and sane.
func (c *Config) Validate() error {
	if c.Strava.ClientID == "" {
		return errors.New("STRAVA_CLIENT_ID is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.ClientSecret == "" {
		return errors.New("STRAVA_CLIENT_SECRET is required - get it from https://www.strava.com/settings/api")
	}
	if c.Strava.RefreshToken == "" {
		return errors.New("STRAVA_REFRESH_TOKEN is required - authorize the app once to obtain it")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("RUNCOACH_CACHE_TTL must not be negative, got %v", c.CacheTTL)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("RUNCOACH_LOG_LEVEL must be debug, info, warn, or error, got %q", c.LogLevel)
	}
	return nil
}
