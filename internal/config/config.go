package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/pbaille/ventures/internal/store"
)

// Config is the process configuration read from the environment.
// Command-line flags override individual fields after parsing.
type Config struct {
	Backend      store.Backend `env:"VENTURES_BACKEND"       envDefault:"sqlite"`
	DBPath       string        `env:"VENTURES_DB"`
	RedisAddr    string        `env:"VENTURES_REDIS_ADDR"    envDefault:"localhost:6379"`
	RedisPrefix  string        `env:"VENTURES_REDIS_PREFIX"  envDefault:"ventures"`
	HTTPAddr     string        `env:"VENTURES_HTTP_ADDR"     envDefault:":8080"`
	LogMode      string        `env:"VENTURES_LOG_MODE"      envDefault:"dev"`
	AnthropicKey string        `env:"ANTHROPIC_API_KEY"`
	PitchModel   string        `env:"ANTHROPIC_MODEL"        envDefault:"claude-sonnet-4-20250514"`
	PitchTimeout time.Duration `env:"VENTURES_PITCH_TIMEOUT" envDefault:"60s"`
}

// Load parses the environment and fills the default database path
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBPath()
	}
	return cfg, nil
}

// DefaultDBPath is ~/.ventures/ventures.db
func DefaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".ventures", "ventures.db")
}

// StoreOptions maps the config onto store.Open options
func (c Config) StoreOptions() store.Options {
	return store.Options{
		Backend:     c.Backend,
		Path:        c.DBPath,
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	}
}
