package cart

import (
	"context"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
)

// Executor performs the add-to-cart trigger on validated entries. It never
// lets a fault propagate to the orchestrator: a missing control, an activator
// error or a panic from unexpected document structure all surface as false.
type Executor struct {
	page *page.Query
	log  logger.Logger
}

// NewExecutor creates an executor over the given page query layer.
func NewExecutor(q *page.Query, log logger.Logger) *Executor {
	return &Executor{
		page: q,
		log:  log,
	}
}

// AddValidatedEntry actuates the add control of an already-validated entry.
// True means the control was actuated, not that the vendor's backend
// confirmed the addition; the page exposes no way to observe that.
func (e *Executor) AddValidatedEntry(ctx context.Context, entry *goquery.Selection) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("Add-to-cart trigger panicked",
				logger.String("panic", panicMessage(r)),
			)
			ok = false
		}
	}()

	if err := e.page.TriggerAdd(ctx, entry); err != nil {
		e.log.Warn("Add-to-cart trigger failed", logger.Error(err))
		return false
	}
	return true
}

func panicMessage(r any) string {
	if err, isErr := r.(error); isErr {
		return err.Error()
	}
	if s, isStr := r.(string); isStr {
		return s
	}
	return "unknown panic"
}
