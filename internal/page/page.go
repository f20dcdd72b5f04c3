// Package page implements selector-driven read access to a vendor's rendered
// menu page. Vendor menus carry no stable identifiers; the only structure the
// page exposes is display text and the left-to-right weekday layout, so every
// accessor here works purely on configured CSS selectors and document order.
package page

import (
	"context"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/models"
)

// ErrNoAddButton is returned by TriggerAdd when the entry has no add control.
var ErrNoAddButton = errors.New("add button not found in food entry")

// Activator invokes the native activation of an add-to-cart control. The
// production implementation issues the HTTP request the control describes;
// tests record invocations instead.
//
// Activation only confirms the control was actuated. Whether the vendor's
// backend actually registered the item is not observable from here.
type Activator interface {
	Activate(ctx context.Context, button *goquery.Selection) error
}

// DateOption is one date-selector control and the calendar date it carries.
type DateOption struct {
	Selection *goquery.Selection
	Date      string
}

// Query provides stateless accessors over one parsed menu document. The
// document is supplied by the caller, never read from ambient state, so tests
// can run against fixture HTML.
type Query struct {
	doc       *goquery.Document
	selectors models.Selectors
	activator Activator
	log       logger.Logger
}

// NewQuery creates a query layer over doc using the vendor's selector set.
func NewQuery(doc *goquery.Document, selectors models.Selectors, activator Activator, log logger.Logger) *Query {
	return &Query{
		doc:       doc,
		selectors: selectors,
		activator: activator,
		log:       log,
	}
}

// FindFoodEntryByName scans every food title on the page and returns the
// enclosing food entry of the first whose trimmed text equals name exactly.
// Matching is case-sensitive string equality; no fuzzy matching. Returns nil
// when no title matches or the match has no enclosing entry.
func (q *Query) FindFoodEntryByName(name string) *goquery.Selection {
	var entry *goquery.Selection

	q.doc.Find(q.selectors.FoodTitle).EachWithBreak(func(_ int, title *goquery.Selection) bool {
		if strings.TrimSpace(title.Text()) != name {
			return true
		}
		container := title.Closest(q.selectors.FoodContainer)
		if container.Length() > 0 {
			entry = container
		}
		return false
	})

	if entry != nil {
		q.log.Debug("Found food entry", logger.String("food", name))
	}
	return entry
}

// FindEnclosingCategory returns the nearest category ancestor of entry, or
// nil when the entry is not inside a recognized category.
func (q *Query) FindEnclosingCategory(entry *goquery.Selection) *goquery.Selection {
	category := entry.Closest(q.selectors.Category)
	if category.Length() == 0 {
		return nil
	}
	return category
}

// EntriesInCategory returns all food entries inside category in document
// order. A category renders one entry per weekday column, in the same order
// as the date-selector controls.
func (q *Query) EntriesInCategory(category *goquery.Selection) []*goquery.Selection {
	var entries []*goquery.Selection
	category.Find(q.selectors.FoodContainer).Each(func(_ int, s *goquery.Selection) {
		entries = append(entries, s)
	})
	return entries
}

// DateOptions returns the page's date-selector controls in document order.
// Controls missing the configured date attribute are excluded.
func (q *Query) DateOptions() []DateOption {
	var options []DateOption
	q.doc.Find(q.selectors.DateButton).Each(func(_ int, s *goquery.Selection) {
		date, ok := s.Attr(q.selectors.DateAttribute)
		if !ok {
			return
		}
		options = append(options, DateOption{Selection: s, Date: date})
	})
	return options
}

// AvailableDates returns the calendar dates currently offered by the page.
func (q *Query) AvailableDates() []string {
	options := q.DateOptions()
	dates := make([]string, 0, len(options))
	for _, opt := range options {
		dates = append(dates, opt.Date)
	}
	return dates
}

// ResolveDateIndex converts targetDate into a zero-based column index by
// scanning the date-selector controls. Comparison is exact string equality on
// the attribute value, not date-semantic equality. The index is resolved
// fresh on every call; page content can change between requests.
func (q *Query) ResolveDateIndex(targetDate string) (int, bool) {
	for i, opt := range q.DateOptions() {
		if opt.Date == targetDate {
			return i, true
		}
	}
	return 0, false
}

// FoodTitle returns the trimmed display name of a food entry, or "" when the
// entry has no title element.
func (q *Query) FoodTitle(entry *goquery.Selection) string {
	return strings.TrimSpace(entry.Find(q.selectors.FoodTitle).First().Text())
}

// AllFoodTitles returns the non-empty display names of every entry in
// category, in document order.
func (q *Query) AllFoodTitles(category *goquery.Selection) []string {
	var titles []string
	for _, entry := range q.EntriesInCategory(category) {
		if title := q.FoodTitle(entry); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// Categories returns every category on the page in document order.
func (q *Query) Categories() []*goquery.Selection {
	var categories []*goquery.Selection
	q.doc.Find(q.selectors.Category).Each(func(_ int, s *goquery.Selection) {
		categories = append(categories, s)
	})
	return categories
}

// TriggerAdd locates the add control inside entry and actuates it. Returns
// ErrNoAddButton without side effect when the control is absent. A nil error
// means the control was actuated, not that the vendor confirmed the addition.
func (q *Query) TriggerAdd(ctx context.Context, entry *goquery.Selection) error {
	button := entry.Find(q.selectors.AddButton).First()
	if button.Length() == 0 {
		return ErrNoAddButton
	}

	if err := q.activator.Activate(ctx, button); err != nil {
		return err
	}

	q.log.Debug("Add control actuated", logger.String("food", q.FoodTitle(entry)))
	return nil
}
