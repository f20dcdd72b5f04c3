// Package testhelpers provides shared fixtures for autocart tests.
package testhelpers

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/models"
	"github.com/Zolikazer/forktimize-autocart/internal/vendor"
)

// MenuCategory is one menu course for fixture pages: one food per date
// column, in column order. An empty food name renders an entry without a
// title; the literal "-" renders no entry at all (shorter category).
type MenuCategory struct {
	Foods []string
}

// MenuHTML renders a vendor menu page in the CityFood layout: a row of date
// buttons followed by category blocks holding one food entry per column.
func MenuHTML(dates []string, categories ...MenuCategory) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"date-selector\">")
	for _, date := range dates {
		fmt.Fprintf(&b, `<button class="date-button" data-date="%s">%s</button>`, date, date)
	}
	b.WriteString("</div>")

	for _, category := range categories {
		b.WriteString(`<div class="category">`)
		for _, food := range category.Foods {
			if food == "-" {
				continue
			}
			b.WriteString(`<div class="food">`)
			if food != "" {
				fmt.Fprintf(&b, `<div class="food-top-title">%s</div>`, food)
			}
			fmt.Fprintf(&b,
				`<button aria-label="Kosárhoz adás: %s" data-action="/cart/add">Kosárhoz</button>`, food)
			b.WriteString("</div>")
		}
		b.WriteString("</div>")
	}

	b.WriteString("</body></html>")
	return b.String()
}

// Doc parses HTML into a goquery document, failing the test on error.
func Doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture HTML: %v", err)
	}
	return doc
}

// CityFoodSelectors returns the selector set the fixture markup matches.
func CityFoodSelectors() models.Selectors {
	return vendor.CityFood().Selectors
}

// RecordingActivator records every activation for assertions. Err, when set,
// is returned from each activation.
type RecordingActivator struct {
	mu     sync.Mutex
	Err    error
	titles []string
}

// Activate records the food title of the entry whose button was actuated.
func (a *RecordingActivator) Activate(_ context.Context, button *goquery.Selection) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Err != nil {
		return a.Err
	}
	title := strings.TrimSpace(button.Closest(".food").Find(".food-top-title").Text())
	a.titles = append(a.titles, title)
	return nil
}

// Activated returns the food titles actuated so far, in order.
func (a *RecordingActivator) Activated() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.titles...)
}
