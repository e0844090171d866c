package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, populated from the environment
type Config struct {
	Port        string        `env:"PORT" envDefault:"8080"`
	GinMode     string        `env:"GIN_MODE" envDefault:"debug"`
	DatabaseURL string        `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret   string        `env:"JWT_SECRET,required,notEmpty"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"hustlefolio"`
	JWTExpiry   time.Duration `env:"JWT_EXPIRY" envDefault:"24h"`
	AdminSecret string        `env:"ADMIN_SECRET" envDefault:""`
	CORSOrigin  string        `env:"CORS_ORIGIN" envDefault:"*"`
}

// Load reads a .env file if present, then parses the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	return &cfg, nil
}
