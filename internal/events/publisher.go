// Package events publishes cart batch lifecycle events to Redis Streams.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
)

// StreamName is the Redis stream cart events are appended to.
const StreamName = "forktimize:cart-events"

// EventTypeBatchCompleted marks the end of one auto-cart run.
const EventTypeBatchCompleted = "cart.batch_completed"

// asyncPublishTimeout bounds async publish operations.
const asyncPublishTimeout = 5 * time.Second

// CartEvent is one cart lifecycle event.
type CartEvent struct {
	EventID   uuid.UUID `json:"event_id"`
	EventType string    `json:"event_type"`
	Vendor    string    `json:"vendor"`
	Date      string    `json:"date"`
	Requested int       `json:"requested"`
	Added     int       `json:"added"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes cart events to a Redis stream.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil if client is nil.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{
		client: client,
		log:    log,
	}
}

// Publish appends an event to the stream.
func (p *Publisher) Publish(ctx context.Context, event CartEvent) error {
	if p == nil || p.client == nil {
		return nil // no-op when not configured
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{
			"event": string(payload),
		},
	})
	if publishErr := result.Err(); publishErr != nil {
		p.log.Error("Failed to publish cart event",
			logger.String("event_type", event.EventType),
			logger.String("date", event.Date),
			logger.Error(publishErr),
		)
		return fmt.Errorf("publish to stream: %w", publishErr)
	}

	p.log.Info("Published cart event",
		logger.String("event_type", event.EventType),
		logger.String("vendor", event.Vendor),
		logger.String("stream_id", result.Val()),
	)
	return nil
}

// BatchCompleted publishes a batch-completed event asynchronously. Errors are
// logged, never returned; events must not affect cart outcomes.
func (p *Publisher) BatchCompleted(vendor, date string, results []models.CartResult) {
	if p == nil {
		return
	}

	added := 0
	for _, r := range results {
		if r.Success {
			added++
		}
	}
	event := CartEvent{
		EventType: EventTypeBatchCompleted,
		Vendor:    vendor,
		Date:      date,
		Requested: len(results),
		Added:     added,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), asyncPublishTimeout)
		defer cancel()

		if err := p.Publish(ctx, event); err != nil {
			p.log.Error("Async event publish failed",
				logger.String("event_type", event.EventType),
				logger.Error(err),
			)
		}
	}()
}
