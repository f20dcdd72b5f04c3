package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/testhelpers"
)

var weekDates = []string{"2025-01-13", "2025-01-14", "2025-01-15"}

func newMatcher(t *testing.T, html string) (*cart.Matcher, *page.Query) {
	t.Helper()
	q := page.NewQuery(
		testhelpers.Doc(t, html),
		testhelpers.CityFoodSelectors(),
		&testhelpers.RecordingActivator{},
		testhelpers.NewTestLogger(),
	)
	return cart.NewMatcher(q, testhelpers.NewTestLogger()), q
}

func TestMatch_ValidatedPositionalEntry(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Pizza", "Pizza"}},
	)
	matcher, q := newMatcher(t, html)

	entry, err := matcher.Match("Pizza", "2025-01-14")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Pizza", q.FoodTitle(entry))
}

func TestMatch_YieldsPositionalEntryNotFirstMatch(t *testing.T) {
	// "Salad" is found at column 0 first, but the request targets column 2,
	// which also displays "Salad". The yielded entry must be column 2's.
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Salad", "Soup", "Salad"}},
	)
	matcher, q := newMatcher(t, html)

	entry, err := matcher.Match("Salad", "2025-01-15")
	require.NoError(t, err)

	category := q.FindEnclosingCategory(entry)
	require.NotNil(t, category)
	entries := q.EntriesInCategory(category)
	require.Len(t, entries, 3)
	// goquery selections wrap the same underlying nodes
	assert.Equal(t, entries[2].Get(0), entry.Get(0))
}

func TestMatch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		food    string
		date    string
		wantErr error
	}{
		{
			name: "food not found anywhere",
			html: testhelpers.MenuHTML(weekDates,
				testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
			),
			food:    "Burger",
			date:    "2025-01-14",
			wantErr: cart.ErrFoodNotFound,
		},
		{
			name: "entry without category ancestor",
			html: `<html><body>
				<div class="date-selector"><button class="date-button" data-date="2025-01-14">Tue</button></div>
				<div class="food"><div class="food-top-title">Pizza</div></div>
			</body></html>`,
			food:    "Pizza",
			date:    "2025-01-14",
			wantErr: cart.ErrNoCategory,
		},
		{
			name: "date not rendered",
			html: testhelpers.MenuHTML(weekDates,
				testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
			),
			food:    "Pizza",
			date:    "2025-02-01",
			wantErr: cart.ErrDateUnavailable,
		},
		{
			name: "category shorter than date row",
			html: testhelpers.MenuHTML(weekDates,
				testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "-"}},
			),
			food:    "Pizza",
			date:    "2025-01-15",
			wantErr: cart.ErrIndexOutOfRange,
		},
		{
			name: "different food at target column",
			html: testhelpers.MenuHTML(weekDates,
				testhelpers.MenuCategory{Foods: []string{"Salad", "Soup", "Stew"}},
			),
			food:    "Salad",
			date:    "2025-01-14",
			wantErr: cart.ErrNameMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher, _ := newMatcher(t, tt.html)
			entry, err := matcher.Match(tt.food, tt.date)
			assert.Nil(t, entry)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMatch_ValidationBeatsInitialSearch(t *testing.T) {
	// The name exists in the second category, but the first category also
	// contains it and wins the initial search; its column 1 displays a
	// different dish, so validation must fail rather than fall through to
	// the other category.
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Soup", "Stew"}},
		testhelpers.MenuCategory{Foods: []string{"Salad", "Pizza", "Rice"}},
	)
	matcher, _ := newMatcher(t, html)

	_, err := matcher.Match("Pizza", "2025-01-14")
	assert.ErrorIs(t, err, cart.ErrNameMismatch)
}
