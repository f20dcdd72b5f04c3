package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/testhelpers"
)

func newProbePage(t *testing.T, html string) *page.Query {
	t.Helper()
	return page.NewQuery(testhelpers.Doc(t, html), testhelpers.CityFoodSelectors(), page.NopActivator{}, testhelpers.NewTestLogger())
}

func TestCheckAvailability(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Soup", "Pizza", "Stew"}},
		testhelpers.MenuCategory{Foods: []string{"Rice", "Salad", "Beans"}},
	)
	q := newProbePage(t, html)

	report := cart.CheckAvailability(q, []string{"Pizza", "Salad", "Burger"}, "2025-01-14")

	assert.True(t, report.DateAvailable)
	assert.Equal(t, []string{"Pizza", "Salad"}, report.Available)
	assert.Equal(t, []string{"Burger"}, report.Missing)
}

func TestCheckAvailability_DateMissing(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
	)
	q := newProbePage(t, html)

	report := cart.CheckAvailability(q, []string{"Pizza", "Salad"}, "2025-06-01")

	assert.False(t, report.DateAvailable)
	assert.Empty(t, report.Available)
	assert.Equal(t, []string{"Pizza", "Salad"}, report.Missing)
}

func TestAnalyzeCategories(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
		testhelpers.MenuCategory{Foods: []string{"Rice", "Stew", "-"}},
	)
	q := newProbePage(t, html)

	reports := cart.AnalyzeCategories(q)

	require.Len(t, reports, 2)
	assert.Equal(t, 3, reports[0].EntryCount)
	assert.Equal(t, []string{"Pizza", "Salad", "Soup"}, reports[0].Titles)
	assert.Equal(t, 2, reports[1].EntryCount)
	assert.Equal(t, []string{"Rice", "Stew"}, reports[1].Titles)
}
