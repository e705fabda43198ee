package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"8080"`
	AppEnv      string        `env:"APP_ENV" envDefault:"development"`
	Premium     bool          `env:"PREMIUM" envDefault:"true"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"1024"`
	RateLimit   float64       `env:"RATE_LIMIT" envDefault:"20"`
	RateBurst   int           `env:"RATE_BURST" envDefault:"40"`
	AssetsDir   string        `env:"ASSETS_DIR" envDefault:"./assets"`
}

// LoadConfig reads an optional .env file and parses the environment into a Config.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.MaxSessions <= 0 {
		return nil, fmt.Errorf("MAX_SESSIONS must be positive, got %d", cfg.MaxSessions)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}

	return cfg, nil
}
