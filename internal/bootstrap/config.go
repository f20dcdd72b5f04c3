package bootstrap

import (
	"flag"
	"fmt"

	"github.com/Zolikazer/forktimize-autocart/internal/config"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
)

// LoadConfig loads configuration from the -config flag path.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// CreateLogger creates the service logger.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "forktimize-autocart"),
		logger.String("version", version),
	), nil
}
