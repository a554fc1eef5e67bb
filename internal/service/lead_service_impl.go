package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/pkg/auth"
)

// leadServiceImpl is the production implementation of LeadService.
type leadServiceImpl struct {
	identity auth.IdentityProvider
	users    repository.UserRepository
	listings repository.ListingRepository
	agents   repository.AgentRepository
	leads    repository.LeadRepository
}

// NewLeadService creates a LeadService backed by the given repositories.
func NewLeadService(
	identity auth.IdentityProvider,
	users repository.UserRepository,
	listings repository.ListingRepository,
	agents repository.AgentRepository,
	leads repository.LeadRepository,
) LeadService {
	return &leadServiceImpl{identity: identity, users: users, listings: listings, agents: agents, leads: leads}
}

// ContactAgent checks identity and onboarding before touching any lead.
// The duplicate check and the insert are not atomic; two concurrent
// submissions may both create a lead.
func (s *leadServiceImpl) ContactAgent(ctx context.Context, listingID, message string) (*ContactResult, error) {
	id, ok := s.identity.CurrentIdentity(ctx)
	if !ok {
		return &ContactResult{Outcome: OutcomeAuthRequired}, nil
	}
	buyer, err := s.users.FindByAuthID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ContactResult{Outcome: OutcomeOnboardingRequired}, nil
	}
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetByID(ctx, listingID)
	if errors.Is(err, repository.ErrNotFound) {
		return &ContactResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(buyer.Email)
	existing, err := s.leads.FindByListingAndEmail(ctx, listing.ID, email)
	switch {
	case err == nil:
		return &ContactResult{Outcome: OutcomeOK, Lead: existing, Existing: true}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	lead := &model.Lead{
		ListingID:  listing.ID,
		AgentID:    listing.AgentID,
		BuyerName:  buyer.Name,
		BuyerEmail: email,
		BuyerPhone: buyer.Phone,
		Message:    strings.TrimSpace(message),
		Status:     model.LeadNew,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, err
	}
	slog.Info("lead created", "lead_id", lead.ID, "listing_id", listing.ID, "agent_id", listing.AgentID)
	return &ContactResult{Outcome: OutcomeOK, Lead: lead}, nil
}

func (s *leadServiceImpl) ListForAgent(ctx context.Context) ([]*model.Lead, error) {
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return nil, err
	}
	return s.leads.ListByAgent(ctx, agent.ID)
}

func (s *leadServiceImpl) UpdateStatus(ctx context.Context, leadID string, status model.LeadStatus) error {
	if !status.Valid() {
		return invalid("status")
	}
	agent, err := currentAgent(ctx, s.identity, s.agents)
	if err != nil {
		return err
	}
	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return err
	}
	if lead.AgentID != agent.ID {
		return ErrForbidden
	}
	return s.leads.UpdateStatus(ctx, leadID, status)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// currentAgent resolves the agent profile of the calling identity.
func currentAgent(ctx context.Context, identity auth.IdentityProvider, agents repository.AgentRepository) (*model.Agent, error) {
	id, ok := identity.CurrentIdentity(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	agent, err := agents.FindByUserID(ctx, id.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrAgentRequired
	}
	return agent, err
}
