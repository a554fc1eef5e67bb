package service

import (
	"context"
	"testing"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository/memstore"
	"github.com/homestead/backend/pkg/auth"
)

// fixture wires services over an in-memory store and metadata store.
type fixture struct {
	store    *memstore.Store
	meta     *auth.MemoryMetadataStore
	identity *auth.Provider
}

func newFixture() *fixture {
	meta := auth.NewMemoryMetadataStore()
	return &fixture{store: memstore.New(), meta: meta, identity: auth.NewProvider(meta)}
}

func (f *fixture) leads() LeadService {
	return NewLeadService(f.identity, f.store.Users(), f.store.Listings(), f.store.Agents(), f.store.Leads())
}

func (f *fixture) saved() SavedService {
	return NewSavedService(f.identity, f.store.Users(), f.store.Listings(), f.store.Saved())
}

func (f *fixture) onboarding() OnboardingService {
	return NewOnboardingService(f.identity, f.store.Users(), f.store.Agents())
}

// signedIn returns a context carrying an identity.
func signedIn(id string, plans ...string) context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{
		ID:    id,
		Email: id + "@Example.com",
		Name:  "Name " + id,
		Plans: plans,
	})
}

// buyer signs in and onboards a buyer.
func (f *fixture) buyer(t *testing.T, id string) context.Context {
	t.Helper()
	ctx := signedIn(id)
	if _, err := f.onboarding().CompleteUser(ctx, ProfileInput{Phone: "555-0100"}); err != nil {
		t.Fatalf("CompleteUser: %v", err)
	}
	return ctx
}

// agent signs in and onboards an agent holding the agent plan.
func (f *fixture) agent(t *testing.T, id string) (context.Context, *model.Agent) {
	t.Helper()
	ctx := signedIn(id, auth.PlanAgent)
	a, err := f.onboarding().CompleteAgent(ctx, AgentProfileInput{Agency: "Coastal Realty"})
	if err != nil {
		t.Fatalf("CompleteAgent: %v", err)
	}
	return ctx, a
}

func (f *fixture) listing(t *testing.T, agentID, title string) *model.Listing {
	t.Helper()
	l := &model.Listing{
		AgentID:      agentID,
		Title:        title,
		Status:       model.StatusActive,
		PropertyType: model.PropertyHouse,
		Price:        500000,
	}
	if err := f.store.Listings().Create(context.Background(), l); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return l
}

func (f *fixture) leadCount(t *testing.T, agentID string) int {
	t.Helper()
	n, err := f.store.Leads().CountByAgent(context.Background(), agentID, "")
	if err != nil {
		t.Fatalf("CountByAgent: %v", err)
	}
	return n
}
