package page

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// NopActivator satisfies Activator without touching anything. Used on
// dry-run paths (availability probes, diagnostics) where TriggerAdd must
// never reach the vendor.
type NopActivator struct{}

func (NopActivator) Activate(context.Context, *goquery.Selection) error {
	return nil
}
