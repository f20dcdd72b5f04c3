// Package storage persists cart records: which foods were successfully added
// to a vendor cart, keyed by date. Persistence is best-effort; a lost record
// never fails the cart operation that produced it.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
)

const recordKeyPrefix = "forktimize:cart-records:"

// ErrRecordNotFound is returned when no record exists for a date.
var ErrRecordNotFound = errors.New("cart record not found")

// CartRecordStore stores cart records in Redis.
type CartRecordStore struct {
	client *redis.Client
	log    logger.Logger
}

// NewCartRecordStore creates a store. Returns nil if client is nil.
func NewCartRecordStore(client *redis.Client, log logger.Logger) *CartRecordStore {
	if client == nil {
		return nil
	}
	return &CartRecordStore{
		client: client,
		log:    log,
	}
}

// Save writes the record for its date, replacing any previous one.
func (s *CartRecordStore) Save(ctx context.Context, record models.CartRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal cart record: %w", err)
	}

	if err := s.client.Set(ctx, recordKey(record.Date), payload, 0).Err(); err != nil {
		return fmt.Errorf("save cart record: %w", err)
	}

	s.log.Info("Cart record saved",
		logger.String("date", record.Date),
		logger.String("vendor", record.Vendor),
		logger.Int("added", record.AddedCount),
	)
	return nil
}

// Load returns the record for a date, or ErrRecordNotFound.
func (s *CartRecordStore) Load(ctx context.Context, date string) (*models.CartRecord, error) {
	payload, err := s.client.Get(ctx, recordKey(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cart record: %w", err)
	}

	var record models.CartRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("unmarshal cart record: %w", err)
	}
	return &record, nil
}

// Delete removes the record for a date. Deleting a missing record is not an
// error.
func (s *CartRecordStore) Delete(ctx context.Context, date string) error {
	if err := s.client.Del(ctx, recordKey(date)).Err(); err != nil {
		return fmt.Errorf("delete cart record: %w", err)
	}
	return nil
}

// List returns all stored records.
func (s *CartRecordStore) List(ctx context.Context) ([]models.CartRecord, error) {
	var records []models.CartRecord

	iter := s.client.Scan(ctx, 0, recordKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		payload, err := s.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // expired between scan and get
		}
		if err != nil {
			return nil, fmt.Errorf("load cart record %s: %w", iter.Val(), err)
		}

		var record models.CartRecord
		if err := json.Unmarshal(payload, &record); err != nil {
			s.log.Warn("Skipping malformed cart record",
				logger.String("key", iter.Val()),
				logger.Error(err),
			)
			continue
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan cart records: %w", err)
	}
	return records, nil
}

func recordKey(date string) string {
	return recordKeyPrefix + date
}
