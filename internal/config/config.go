package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DBDriver      string        `env:"DB_DRIVER" envDefault:"mysql"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"3306"`
	DBUser        string        `env:"DB_USER" envDefault:"pmuser"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"pmpassword"`
	DBName        string        `env:"DB_NAME" envDefault:"project_management"`
	DBPath        string        `env:"DB_PATH" envDefault:"project_management.db"`
	RedisHost     string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     string        `env:"REDIS_PORT" envDefault:"6379"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"default-secret-key-change-me"`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"default-jwt-secret-change-me"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	GinMode       string        `env:"GIN_MODE" envDefault:"debug"`
	Port          string        `env:"PORT" envDefault:"5000"`
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:5000"`
	UploadDir     string        `env:"UPLOAD_DIR" envDefault:"uploads"`

	// Bootstrap admin, seeded on startup when both email and password are set
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
