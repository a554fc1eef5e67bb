package service

import (
	"context"

	"github.com/homestead/backend/internal/model"
)

// ToggleResult is the outcome of a saved-listing toggle. Saved is the
// membership after the toggle.
type ToggleResult struct {
	Outcome Outcome `json:"outcome"`
	Saved   bool    `json:"saved"`
}

// SavedService manages the caller's saved-listing set.
type SavedService interface {
	// Toggle adds the listing when absent and removes it when present.
	Toggle(ctx context.Context, listingID string) (*ToggleResult, error)
	// IsSaved reports membership; anonymous or not-onboarded callers read false.
	IsSaved(ctx context.Context, listingID string) (bool, error)
	// List returns the saved listings, or an outcome other than OutcomeOK.
	List(ctx context.Context) ([]*model.Listing, Outcome, error)
}
