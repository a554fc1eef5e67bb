package service

import (
	"context"

	"github.com/homestead/backend/internal/model"
)

// ProfileInput is the buyer profile submitted during onboarding and on the
// profile page.
type ProfileInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// AgentProfileInput is the agent profile submitted during agent onboarding.
type AgentProfileInput struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Bio           string `json:"bio"`
	LicenseNumber string `json:"license_number"`
	Agency        string `json:"agency"`
}

// OnboardingService creates profile documents and records the onboarding
// flags in the identity metadata.
type OnboardingService interface {
	// CompleteUser creates the caller's buyer profile. Calling it again
	// returns the existing profile unchanged.
	CompleteUser(ctx context.Context, in ProfileInput) (*model.User, error)
	// CompleteAgent creates or updates the caller's agent profile. The caller
	// must hold the agent plan.
	CompleteAgent(ctx context.Context, in AgentProfileInput) (*model.Agent, error)
	Profile(ctx context.Context) (*model.User, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*model.User, error)
}
