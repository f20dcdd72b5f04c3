package cart

import (
	"github.com/Zolikazer/forktimize-autocart/internal/logger"
	"github.com/Zolikazer/forktimize-autocart/internal/page"
)

// Availability is a dry-run report of what an auto-cart run could match,
// produced without actuating any add control.
type Availability struct {
	DateAvailable bool     `json:"date_available"`
	Available     []string `json:"available"`
	Missing       []string `json:"missing"`
}

// CategoryReport describes one menu category for diagnostics.
type CategoryReport struct {
	EntryCount int      `json:"entry_count"`
	Titles     []string `json:"titles"`
}

// CheckAvailability reports which of the requested foods are present on the
// page for the target date. When the date itself is missing every food is
// reported missing, mirroring the orchestrator's behavior.
func CheckAvailability(q *page.Query, foods []string, targetDate string) Availability {
	report := Availability{
		Available: []string{},
		Missing:   []string{},
	}

	if _, ok := q.ResolveDateIndex(targetDate); !ok {
		report.Missing = append(report.Missing, foods...)
		return report
	}
	report.DateAvailable = true

	matcher := NewMatcher(q, logger.NewNopLogger())
	for _, food := range foods {
		if _, err := matcher.Match(food, targetDate); err != nil {
			report.Missing = append(report.Missing, food)
			continue
		}
		report.Available = append(report.Available, food)
	}
	return report
}

// AnalyzeCategories reports the structure of every category on the page, in
// document order. Useful when a vendor changes its layout and matches start
// failing.
func AnalyzeCategories(q *page.Query) []CategoryReport {
	var reports []CategoryReport
	for _, category := range q.Categories() {
		titles := q.AllFoodTitles(category)
		reports = append(reports, CategoryReport{
			EntryCount: len(q.EntriesInCategory(category)),
			Titles:     titles,
		})
	}
	return reports
}
