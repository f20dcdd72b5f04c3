// Package bootstrap handles application initialization and lifecycle for the
// autocart service.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/telemetry"
)

const version = "dev"

// shutdownTimeout bounds draining of in-flight requests on SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// Start initializes and runs the autocart service.
func Start() error {
	// Phase 1: config and logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: vendor registry
	registry, err := SetupVendors(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up vendors: %w", err)
	}

	// Phase 3: optional Redis-backed store and event publisher
	store, publisher := SetupRedis(cfg, log)

	// Phase 4: HTTP server
	metrics := telemetry.NewMetrics()
	router := SetupRouter(cfg, registry, store, publisher, metrics, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	select {
	case runErr := <-serverErr:
		if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			log.Error("Server error", logger.Error(runErr))
			return fmt.Errorf("server error: %w", runErr)
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received, draining requests")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error("Graceful shutdown failed", logger.Error(shutdownErr))
			return fmt.Errorf("shutdown: %w", shutdownErr)
		}
	}

	log.Info("Server exited")
	return nil
}
