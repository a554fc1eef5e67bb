package service

import (
	"errors"

	"github.com/homestead/backend/internal/repository"
)

// Outcome is the result class of an identity-gated operation. Authorization
// gaps are reported as outcomes so the caller can redirect, never as errors.
type Outcome string

const (
	OutcomeOK                 Outcome = "ok"
	OutcomeAuthRequired       Outcome = "auth_required"
	OutcomeOnboardingRequired Outcome = "onboarding_required"
	OutcomeNotFound           Outcome = "not_found"
)

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = repository.ErrNotFound
	// ErrForbidden is returned when an agent acts on a record it does not own.
	ErrForbidden = errors.New("forbidden")
	// ErrAgentRequired is returned when the caller has no agent profile.
	ErrAgentRequired = errors.New("agent profile required")
	// ErrPlanRequired is returned when the caller lacks the agent plan.
	ErrPlanRequired = errors.New("agent plan required")
	// ErrUnauthenticated is returned by agent operations on anonymous requests.
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports invalid input. Field names the offending field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field
}

func invalid(field string) error {
	return &ValidationError{Field: field}
}
