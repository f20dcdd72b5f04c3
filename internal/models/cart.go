// Package models defines the request, result and configuration types shared
// across the autocart service.
package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// FoodRequestItem is one requested food. Meal plans exported by the frontend
// carry foods either as bare display-name strings or as objects with a "name"
// field; both deserialize into this type.
type FoodRequestItem struct {
	Name string `json:"name"`
}

// UnmarshalJSON accepts either "Pizza" or {"name": "Pizza"}.
func (f *FoodRequestItem) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		f.Name = name
		return nil
	}

	type alias FoodRequestItem
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("food item must be a string or an object with a name: %w", err)
	}
	*f = FoodRequestItem(obj)
	return nil
}

// MarshalJSON always emits the object form.
func (f FoodRequestItem) MarshalJSON() ([]byte, error) {
	type alias FoodRequestItem
	return json.Marshal(alias(f))
}

// AutoCartRequest is the immutable input to one orchestration run.
type AutoCartRequest struct {
	Date   string            `json:"date"   binding:"required"`
	Vendor string            `json:"vendor" binding:"required"`
	Foods  []FoodRequestItem `json:"foods"  binding:"required"`
}

// FoodNames returns the normalized display names in request order.
func (r *AutoCartRequest) FoodNames() []string {
	names := make([]string, 0, len(r.Foods))
	for _, f := range r.Foods {
		names = append(names, f.Name)
	}
	return names
}

// CartResult is the per-food outcome of an orchestration run. One is produced
// for every requested food, in request order, regardless of outcome.
type CartResult struct {
	Food    string `json:"food"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// CartSummary is the aggregate response sent back to the caller.
type CartSummary struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Results []CartResult `json:"results"`
}

// Summarize builds the aggregate response for a batch. Success is true only
// if every item succeeded.
func Summarize(results []CartResult) CartSummary {
	successCount := 0
	for _, r := range results {
		if r.Success {
			successCount++
		}
	}

	summary := CartSummary{Results: results}
	if successCount == len(results) {
		summary.Success = true
		summary.Message = fmt.Sprintf("Successfully added all %d foods to cart!", successCount)
	} else {
		summary.Message = fmt.Sprintf("%d foods added successfully, %d failed",
			successCount, len(results)-successCount)
	}
	return summary
}

// CartRecord is the persisted trace of a completed batch, keyed by date.
type CartRecord struct {
	Date           string    `json:"date"`
	Vendor         string    `json:"vendor"`
	Foods          []string  `json:"foods"`
	RequestedCount int       `json:"requested_count"`
	AddedCount     int       `json:"added_count"`
	ProcessedAt    time.Time `json:"processed_at"`
}
