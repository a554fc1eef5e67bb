package service

import (
	"context"

	"github.com/homestead/backend/internal/model"
)

// ContactResult is the outcome of a contact-agent request. Lead is set when
// Outcome is OutcomeOK; Existing reports that the buyer had already
// contacted the agent about this listing.
type ContactResult struct {
	Outcome  Outcome     `json:"outcome"`
	Lead     *model.Lead `json:"lead,omitempty"`
	Existing bool        `json:"existing"`
}

// LeadService handles buyer contact requests and the agent's lead inbox.
type LeadService interface {
	// ContactAgent creates a lead from the caller's profile for the listing's
	// agent. It is idempotent per (listing, buyer email).
	ContactAgent(ctx context.Context, listingID, message string) (*ContactResult, error)
	// ListForAgent returns the calling agent's leads, newest first.
	ListForAgent(ctx context.Context) ([]*model.Lead, error)
	// UpdateStatus changes the status of one of the calling agent's leads.
	UpdateStatus(ctx context.Context, leadID string, status model.LeadStatus) error
}
