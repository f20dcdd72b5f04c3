package cart

import "errors"

// Per-food failures. Every one of these is captured into that food's
// CartResult and the batch continues; none aborts the run.
var (
	// ErrFoodNotFound means no element on the page displays the requested name.
	ErrFoodNotFound = errors.New("food not found on page")

	// ErrNoCategory means the matched entry has no recognized category
	// ancestor; the page layout violates the structural assumption.
	ErrNoCategory = errors.New("no category found for food")

	// ErrDateUnavailable means the requested date is not among the currently
	// rendered date options.
	ErrDateUnavailable = errors.New("date not available")

	// ErrIndexOutOfRange means the resolved day index exceeds the category's
	// entry count, e.g. a holiday gap leaves fewer rendered days.
	ErrIndexOutOfRange = errors.New("day index exceeds foods in category")

	// ErrNameMismatch means the entry at the resolved position displays a
	// different name than requested. This is the strongest signal of a layout
	// assumption violation and is never auto-corrected.
	ErrNameMismatch = errors.New("food name mismatch at target position")

	// ErrActionFailed means the add control was missing or its activation
	// did not appear to execute.
	ErrActionFailed = errors.New("failed to add food to cart")
)

// ErrVendorMismatch is the only batch-fatal error: the fetched page does not
// belong to the requested vendor. It is raised before any food is attempted,
// since per-food matching is meaningless on the wrong site.
var ErrVendorMismatch = errors.New("vendor mismatch")
