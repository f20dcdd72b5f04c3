package bootstrap

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Zolikazer/forktimize-autocart/internal/config"
	"github.com/Zolikazer/forktimize-autocart/internal/events"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/storage"
)

// connectionTimeout bounds the startup Redis ping.
const connectionTimeout = 5 * time.Second

// SetupRedis creates the optional cart record store and event publisher.
// Both are nil when Redis is disabled or unreachable; the service runs
// without persistence in that case.
func SetupRedis(cfg *config.Config, log logger.Logger) (*storage.CartRecordStore, *events.Publisher) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectionTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis not available, cart records and events disabled",
			logger.Error(err),
		)
		_ = client.Close()
		return nil, nil
	}

	log.Info("Redis connected", logger.String("address", cfg.Redis.Address))
	return storage.NewCartRecordStore(client, log), events.NewPublisher(client, log)
}
