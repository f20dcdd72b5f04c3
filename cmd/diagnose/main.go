// Command diagnose probes a vendor menu page with the autocart matching
// engine without adding anything to the cart. Point it at a live URL or a
// saved HTML file to see which date columns and foods the engine resolves.
//
// Usage:
//
//	diagnose -vendor cityfood -date 2025-01-15 -foods "Pizza,Salad"
//	diagnose -file menu.html -date 2025-01-15 -foods "Pizza"
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Zolikazer/forktimize-autocart/internal/cart"
	"github.com/Zolikazer/forktimize-autocart/internal/fetch"
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
	"github.com/Zolikazer/forktimize-autocart/internal/vendor"
)

func main() {
	vendorID := flag.String("vendor", "cityfood", "Vendor id to diagnose")
	file := flag.String("file", "", "Local HTML file to probe instead of the live page")
	date := flag.String("date", "", "Target date (as rendered by the page, e.g. 2025-01-15)")
	foods := flag.String("foods", "", "Comma-separated food names to probe")
	flag.Parse()

	if err := run(*vendorID, *file, *date, *foods); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(vendorID, file, date, foodsParam string) error {
	registry, err := vendor.NewRegistry()
	if err != nil {
		return err
	}
	v, ok := registry.Lookup(vendorID)
	if !ok {
		return fmt.Errorf("unknown vendor %q", vendorID)
	}

	log := logger.NewNopLogger()

	var doc *goquery.Document
	if file != "" {
		f, openErr := os.Open(file)
		if openErr != nil {
			return fmt.Errorf("open %s: %w", file, openErr)
		}
		defer f.Close()
		doc, err = goquery.NewDocumentFromReader(f)
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
	} else {
		fetcher := fetch.NewHTTPFetcher(0, log)
		pg, fetchErr := fetcher.FetchMenu(context.Background(), v)
		if fetchErr != nil {
			return fetchErr
		}
		doc = pg.Document
	}

	q := page.NewQuery(doc, v.Selectors, page.NopActivator{}, log)

	dates := q.AvailableDates()
	fmt.Printf("Vendor:       %s (%s)\n", v.Name, v.Hostname)
	fmt.Printf("Date options: %d %v\n", len(dates), dates)

	for i, report := range cart.AnalyzeCategories(q) {
		fmt.Printf("Category %d:   %d entries  %v\n", i, report.EntryCount, report.Titles)
	}

	if date == "" {
		return nil
	}

	if index, found := q.ResolveDateIndex(date); found {
		fmt.Printf("Date %s resolves to column %d\n", date, index)
	} else {
		fmt.Printf("Date %s is NOT among the rendered date options\n", date)
	}

	if foodsParam == "" {
		return nil
	}

	matcher := cart.NewMatcher(q, log)
	for _, food := range splitFoods(foodsParam) {
		if _, matchErr := matcher.Match(food, date); matchErr != nil {
			fmt.Printf("  FAIL %-30s %v\n", food, matchErr)
			continue
		}
		fmt.Printf("  OK   %s\n", food)
	}
	return nil
}

func splitFoods(param string) []string {
	parts := strings.Split(param, ",")
	foods := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			foods = append(foods, trimmed)
		}
	}
	return foods
}
