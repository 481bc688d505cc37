package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret is the symmetric HS256 signing key. Required; the process
	// refuses to start without it.
	JWTSecret string `env:"JWT_SECRET"`

	// TokenTTL is the bearer token lifetime from issuance to expiry.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// PublicRoutePrefixes lists path prefixes the token filter skips.
	PublicRoutePrefixes []string `env:"PUBLIC_ROUTE_PREFIXES, default=/auth/\\,/health\\,/metrics"`

	BcryptCost  int `env:"BCRYPT_COST,  default=10"`
	HashWorkers int `env:"HASH_WORKERS, default=4"`

	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,   default=10"`
	LoginAttemptWindow time.Duration `env:"LOGIN_ATTEMPT_WINDOW, default=15m"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_service"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}
	return &cfg, nil
}
