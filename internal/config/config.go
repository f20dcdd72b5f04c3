// Package config loads the autocart service configuration from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/Zolikazer/forktimize-autocart/internal/models"
)

const (
	defaultServerPort      = 8060
	defaultServerTimeout   = 30 * time.Second
	defaultProcessingDelay = 500 * time.Millisecond
	defaultFetchTimeout    = 30 * time.Second
	defaultRedisAddress    = "localhost:6379"
)

type Config struct {
	Debug   bool                  `env:"APP_DEBUG" yaml:"debug"`
	Server  ServerConfig          `yaml:"server"`
	Cart    CartConfig            `yaml:"cart"`
	Redis   RedisConfig           `yaml:"redis"`
	Vendors []models.VendorConfig `yaml:"vendors"`
}

type ServerConfig struct {
	Host         string        `env:"SERVER_HOST" yaml:"host"`
	Port         int           `env:"SERVER_PORT" yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" yaml:"cors_origins"`
}

// CartConfig tunes the orchestrator and page fetching.
type CartConfig struct {
	// ProcessingDelay is the pause between consecutive foods in one batch.
	ProcessingDelay time.Duration `env:"CART_PROCESSING_DELAY" yaml:"processing_delay"`
	// FetchTimeout bounds one vendor menu page fetch.
	FetchTimeout time.Duration `env:"CART_FETCH_TIMEOUT" yaml:"fetch_timeout"`
}

// RedisConfig holds the connection used for cart records and batch events.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
	Enabled  bool   `env:"REDIS_ENABLED"  yaml:"enabled"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.Cart.ProcessingDelay < 0 {
		return errors.New("cart.processing_delay must not be negative")
	}
	return nil
}

// Load reads the config file, applies defaults, then validates.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := load(path, &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setDefaults(&cfg)
	// Env overrides win over defaults too.
	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{
			"http://localhost:5173", // Forktimize frontend dev server
		}
	}
	if cfg.Cart.ProcessingDelay == 0 {
		cfg.Cart.ProcessingDelay = defaultProcessingDelay
	}
	if cfg.Cart.FetchTimeout == 0 {
		cfg.Cart.FetchTimeout = defaultFetchTimeout
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
}
