package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/telemetry"
)

// DefaultProcessingDelay is the pause between consecutive foods. Triggering
// an add can re-render parts of the vendor page; the next search must not
// start until such re-renders settle.
const DefaultProcessingDelay = 500 * time.Millisecond

// RecordStore persists which foods were successfully added, keyed by date.
// A nil store disables persistence.
type RecordStore interface {
	Save(ctx context.Context, record models.CartRecord) error
}

// EventPublisher announces completed batches to downstream consumers.
// A nil publisher disables events.
type EventPublisher interface {
	BatchCompleted(vendor, date string, results []models.CartResult)
}

// Service orchestrates auto-cart runs: for each requested food it drives the
// matcher to a validated entry, actuates the add control, and collects a
// per-food result. One food's failure never prevents the next from being
// attempted.
type Service struct {
	delay     time.Duration
	store     RecordStore
	publisher EventPublisher
	metrics   *telemetry.Metrics
	log       logger.Logger
}

// NewService creates the orchestrator. store, publisher and metrics may each
// be nil.
func NewService(
	store RecordStore,
	publisher EventPublisher,
	metrics *telemetry.Metrics,
	delay time.Duration,
	log logger.Logger,
) *Service {
	if delay <= 0 {
		delay = DefaultProcessingDelay
	}
	return &Service{
		delay:     delay,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
	}
}

// ProcessAutoCart processes every food of the request in order against the
// supplied page. The caller must already have verified that the page belongs
// to the requested vendor. The returned slice always contains exactly one
// result per requested food, in request order.
//
// Foods are processed strictly sequentially: one food fully completes before
// the next search starts, with the configured delay between items (not after
// the last). The delay honors context cancellation; foods not yet attempted
// when the context ends are reported as failed rather than dropped.
func (s *Service) ProcessAutoCart(ctx context.Context, q *page.Query, req *models.AutoCartRequest) []models.CartResult {
	started := time.Now()
	names := req.FoodNames()
	results := make([]models.CartResult, 0, len(names))

	s.log.Info("Starting auto-cart run",
		logger.String("vendor", req.Vendor),
		logger.String("date", req.Date),
		logger.Int("foods", len(names)),
	)

	matcher := NewMatcher(q, s.log)
	executor := NewExecutor(q, s.log)

	for i, name := range names {
		if i > 0 {
			if err := s.wait(ctx); err != nil {
				results = append(results, s.cancelRemaining(names[i:], err)...)
				break
			}
		}
		results = append(results, s.processFood(ctx, matcher, executor, name, req.Date))
	}

	s.finish(ctx, req, results, time.Since(started))
	return results
}

// processFood runs the matching state machine for one food and, on a
// validated entry, actuates the add control.
func (s *Service) processFood(ctx context.Context, matcher *Matcher, executor *Executor, name, date string) models.CartResult {
	s.countAttempt()

	entry, err := matcher.Match(name, date)
	if err != nil {
		s.countFailure(err)
		return models.CartResult{Food: name, Success: false, Error: err.Error()}
	}

	if !executor.AddValidatedEntry(ctx, entry) {
		s.countFailure(ErrActionFailed)
		return models.CartResult{
			Food:    name,
			Success: false,
			Error:   fmt.Sprintf("%q: %v", name, ErrActionFailed),
		}
	}

	s.log.Info("Food added to cart", logger.String("food", name))
	if s.metrics != nil {
		s.metrics.FoodsAdded.Inc()
	}
	return models.CartResult{Food: name, Success: true}
}

// wait pauses between items, ending early when the context is cancelled.
func (s *Service) wait(ctx context.Context) error {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (s *Service) cancelRemaining(names []string, cause error) []models.CartResult {
	s.log.Warn("Auto-cart run cancelled mid-batch",
		logger.Int("remaining", len(names)),
		logger.Error(cause),
	)
	results := make([]models.CartResult, 0, len(names))
	for _, name := range names {
		s.countAttempt()
		s.countFailureReason("cancelled")
		results = append(results, models.CartResult{
			Food:    name,
			Success: false,
			Error:   fmt.Sprintf("cancelled before attempt: %v", cause),
		})
	}
	return results
}

// finish records the batch outcome: metrics, the optional cart record, and
// the optional batch-completed event. None of these can fail the batch.
func (s *Service) finish(ctx context.Context, req *models.AutoCartRequest, results []models.CartResult, elapsed time.Duration) {
	added := make([]string, 0, len(results))
	for _, r := range results {
		if r.Success {
			added = append(added, r.Food)
		}
	}

	s.log.Info("Auto-cart run finished",
		logger.String("vendor", req.Vendor),
		logger.String("date", req.Date),
		logger.Int("requested", len(results)),
		logger.Int("added", len(added)),
		logger.Duration("elapsed", elapsed),
	)

	if s.metrics != nil {
		outcome := "partial"
		if len(added) == len(results) {
			outcome = "success"
		}
		s.metrics.BatchesTotal.WithLabelValues(outcome).Inc()
		s.metrics.BatchDuration.Observe(elapsed.Seconds())
	}

	if s.store != nil && len(added) > 0 {
		record := models.CartRecord{
			Date:           req.Date,
			Vendor:         req.Vendor,
			Foods:          added,
			RequestedCount: len(results),
			AddedCount:     len(added),
			ProcessedAt:    time.Now().UTC(),
		}
		if err := s.store.Save(ctx, record); err != nil {
			// The cart operation itself succeeded; a lost record is log-only.
			s.log.Error("Failed to save cart record",
				logger.String("date", req.Date),
				logger.Error(err),
			)
		}
	}

	if s.publisher != nil {
		s.publisher.BatchCompleted(req.Vendor, req.Date, results)
	}
}

func (s *Service) countAttempt() {
	if s.metrics != nil {
		s.metrics.FoodsAttempted.Inc()
	}
}

func (s *Service) countFailure(err error) {
	s.countFailureReason(failureReason(err))
}

func (s *Service) countFailureReason(reason string) {
	if s.metrics != nil {
		s.metrics.FoodsFailed.WithLabelValues(reason).Inc()
	}
}

// failureReason maps a per-food error onto its metric label.
func failureReason(err error) string {
	switch {
	case errors.Is(err, ErrFoodNotFound):
		return "not_found"
	case errors.Is(err, ErrNoCategory):
		return "no_category"
	case errors.Is(err, ErrDateUnavailable):
		return "date_unavailable"
	case errors.Is(err, ErrIndexOutOfRange):
		return "index_out_of_range"
	case errors.Is(err, ErrNameMismatch):
		return "name_mismatch"
	case errors.Is(err, ErrActionFailed):
		return "action_failed"
	default:
		return "unknown"
	}
}
