package cart_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/testhelpers"
)

func TestAddValidatedEntry(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
	)
	activator := &testhelpers.RecordingActivator{}
	q := page.NewQuery(testhelpers.Doc(t, html), testhelpers.CityFoodSelectors(), activator, testhelpers.NewTestLogger())
	executor := cart.NewExecutor(q, testhelpers.NewTestLogger())

	entry := q.FindFoodEntryByName("Pizza")
	require.NotNil(t, entry)

	assert.True(t, executor.AddValidatedEntry(context.Background(), entry))
	assert.Equal(t, []string{"Pizza"}, activator.Activated())
}

func TestAddValidatedEntry_MissingButton(t *testing.T) {
	html := `<html><body><div class="category">
		<div class="food"><div class="food-top-title">Pizza</div></div>
	</div></body></html>`
	activator := &testhelpers.RecordingActivator{}
	q := page.NewQuery(testhelpers.Doc(t, html), testhelpers.CityFoodSelectors(), activator, testhelpers.NewTestLogger())
	executor := cart.NewExecutor(q, testhelpers.NewTestLogger())

	entry := q.FindFoodEntryByName("Pizza")
	require.NotNil(t, entry)

	assert.False(t, executor.AddValidatedEntry(context.Background(), entry))
	assert.Empty(t, activator.Activated())
}

func TestAddValidatedEntry_ActivatorFault(t *testing.T) {
	html := testhelpers.MenuHTML(weekDates,
		testhelpers.MenuCategory{Foods: []string{"Pizza", "Salad", "Soup"}},
	)
	activator := &testhelpers.RecordingActivator{Err: assert.AnError}
	q := page.NewQuery(testhelpers.Doc(t, html), testhelpers.CityFoodSelectors(), activator, testhelpers.NewTestLogger())
	executor := cart.NewExecutor(q, testhelpers.NewTestLogger())

	entry := q.FindFoodEntryByName("Pizza")
	require.NotNil(t, entry)

	assert.False(t, executor.AddValidatedEntry(context.Background(), entry))
}
