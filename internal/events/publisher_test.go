package events_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolikazer/forktimize-autocart/internal/events"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
	"github.com/Zolikazer/forktimize-autocart/internal/testhelpers"
)

func newTestPublisher(t *testing.T) (*events.Publisher, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return events.NewPublisher(client, testhelpers.NewTestLogger()), client
}

func readEvents(t *testing.T, client *redis.Client) []events.CartEvent {
	t.Helper()
	messages, err := client.XRange(context.Background(), events.StreamName, "-", "+").Result()
	require.NoError(t, err)

	parsed := make([]events.CartEvent, 0, len(messages))
	for _, msg := range messages {
		payload, ok := msg.Values["event"].(string)
		require.True(t, ok)
		var event events.CartEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &event))
		parsed = append(parsed, event)
	}
	return parsed
}

func TestNewPublisher_NilClient(t *testing.T) {
	assert.Nil(t, events.NewPublisher(nil, testhelpers.NewTestLogger()))
}

func TestPublish_AppendsToStream(t *testing.T) {
	publisher, client := newTestPublisher(t)

	err := publisher.Publish(context.Background(), events.CartEvent{
		EventType: events.EventTypeBatchCompleted,
		Vendor:    "cityfood",
		Date:      "2025-01-14",
		Requested: 3,
		Added:     2,
	})
	require.NoError(t, err)

	published := readEvents(t, client)
	require.Len(t, published, 1)
	event := published[0]
	assert.Equal(t, events.EventTypeBatchCompleted, event.EventType)
	assert.Equal(t, "cityfood", event.Vendor)
	assert.Equal(t, "2025-01-14", event.Date)
	assert.Equal(t, 3, event.Requested)
	assert.Equal(t, 2, event.Added)
	assert.NotEqual(t, uuid.Nil, event.EventID, "event id is assigned on publish")
	assert.False(t, event.Timestamp.IsZero())
}

func TestPublish_NilPublisherIsNoop(t *testing.T) {
	var publisher *events.Publisher
	assert.NoError(t, publisher.Publish(context.Background(), events.CartEvent{}))
	publisher.BatchCompleted("cityfood", "2025-01-14", nil)
}

func TestBatchCompleted_PublishesAsync(t *testing.T) {
	publisher, client := newTestPublisher(t)

	publisher.BatchCompleted("cityfood", "2025-01-14", []models.CartResult{
		{Food: "Pizza", Success: true},
		{Food: "Salad", Success: false, Error: "food not found on page"},
	})

	require.Eventually(t, func() bool {
		n, err := client.XLen(context.Background(), events.StreamName).Result()
		return err == nil && n == 1
	}, time.Second, 10*time.Millisecond)

	event := readEvents(t, client)[0]
	assert.Equal(t, 2, event.Requested)
	assert.Equal(t, 1, event.Added)
}
