package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int           `env:"PORT" envDefault:"8080"`
	DatabasePath string        `env:"DATABASE_PATH" envDefault:"./inkwell.db"`
	JWTSecret    string        `env:"JWT_SECRET,required,notEmpty"`
	TokenExpiry  time.Duration `env:"TOKEN_EXPIRY" envDefault:"24h"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// Load parses configuration from environment variables. A missing JWT secret
// is a startup failure, never a per-request one.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
