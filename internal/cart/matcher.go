package cart

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
)

// matchState tracks progress through the per-food matching state machine.
// Any state may transition to a terminal failure.
type matchState int

const (
	stateSearchingEntry matchState = iota
	stateLocatingCategory
	stateResolvingIndex
	stateLocatingPositionalEntry
	stateValidatingName
	stateValidated
)

func (s matchState) String() string {
	switch s {
	case stateSearchingEntry:
		return "SEARCHING_ENTRY"
	case stateLocatingCategory:
		return "LOCATING_CATEGORY"
	case stateResolvingIndex:
		return "RESOLVING_INDEX"
	case stateLocatingPositionalEntry:
		return "LOCATING_POSITIONAL_ENTRY"
	case stateValidatingName:
		return "VALIDATING_NAME"
	case stateValidated:
		return "VALIDATED"
	default:
		return "UNKNOWN"
	}
}

// Matcher locates and validates one food entry on a vendor menu page.
//
// Matching purely by name is necessary because the page has no stable
// cross-date identifier, but it is insufficient because the same dish name
// recurs across categories and weeks. The matcher therefore finds a name
// match anywhere on the page only to derive its category, then re-derives the
// entry positionally at the requested day's column and re-checks the
// displayed name before anything acts on it.
type Matcher struct {
	page *page.Query
	log  logger.Logger
}

// NewMatcher creates a matcher over the given page query layer.
func NewMatcher(q *page.Query, log logger.Logger) *Matcher {
	return &Matcher{
		page: q,
		log:  log,
	}
}

// Match runs the state machine for one food and returns the validated
// positional entry. The returned entry is the one at the resolved day column,
// not the initial name match. Errors wrap the package's per-food sentinels.
func (m *Matcher) Match(name, targetDate string) (*goquery.Selection, error) {
	state := stateSearchingEntry

	entry := m.page.FindFoodEntryByName(name)
	if entry == nil {
		return nil, m.fail(state, name, fmt.Errorf("%q: %w", name, ErrFoodNotFound))
	}

	state = stateLocatingCategory
	category := m.page.FindEnclosingCategory(entry)
	if category == nil {
		return nil, m.fail(state, name, fmt.Errorf("%q: %w", name, ErrNoCategory))
	}

	state = stateResolvingIndex
	index, ok := m.page.ResolveDateIndex(targetDate)
	if !ok {
		return nil, m.fail(state, name, fmt.Errorf("%s: %w", targetDate, ErrDateUnavailable))
	}

	state = stateLocatingPositionalEntry
	entries := m.page.EntriesInCategory(category)
	if index >= len(entries) {
		return nil, m.fail(state, name,
			fmt.Errorf("index %d, category has %d entries: %w", index, len(entries), ErrIndexOutOfRange))
	}
	target := entries[index]

	state = stateValidatingName
	actual := m.page.FoodTitle(target)
	if actual != name {
		return nil, m.fail(state, name,
			fmt.Errorf("expected %q, found %q at index %d: %w", name, actual, index, ErrNameMismatch))
	}

	state = stateValidated
	m.log.Debug("Food validated",
		logger.String("food", name),
		logger.String("date", targetDate),
		logger.Int("day_index", index),
		logger.String("state", state.String()),
	)
	return target, nil
}

func (m *Matcher) fail(state matchState, name string, err error) error {
	m.log.Debug("Food matching failed",
		logger.String("food", name),
		logger.String("state", state.String()),
		logger.Error(err),
	)
	return err
}
