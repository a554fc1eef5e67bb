package auth

import (
	"context"
	"errors"
	"testing"
)

func TestProvider_Anonymous(t *testing.T) {
	p := NewProvider(NewMemoryMetadataStore())
	ctx := context.Background()

	if _, ok := p.CurrentIdentity(ctx); ok {
		t.Error("expected no identity")
	}
	if p.HasPlan(ctx, PlanAgent) {
		t.Error("expected anonymous caller to hold no plan")
	}
	if _, err := p.Metadata(ctx, MetaOnboardingComplete); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}
	if err := p.SetMetadata(ctx, MetaOnboardingComplete, "true"); !errors.Is(err, ErrNoIdentity) {
		t.Errorf("expected ErrNoIdentity, got %v", err)
	}
}

func TestProvider_MetadataIsPerIdentity(t *testing.T) {
	p := NewProvider(NewMemoryMetadataStore())
	alice := WithIdentity(context.Background(), &Identity{ID: "alice"})
	bob := WithIdentity(context.Background(), &Identity{ID: "bob"})

	if err := p.SetMetadata(alice, MetaOnboardingComplete, "true"); err != nil {
		t.Fatalf("SetMetadata: %v", err)
	}
	if !Flag(alice, p, MetaOnboardingComplete) {
		t.Error("expected alice to be onboarded")
	}
	if Flag(bob, p, MetaOnboardingComplete) {
		t.Error("expected bob not to be onboarded")
	}
}

func TestProvider_PlansFor(t *testing.T) {
	store := NewMemoryMetadataStore()
	_ = store.Set(context.Background(), "alice", MetaPlans, " agent , ,premium")
	p := NewProvider(store)

	plans, err := p.PlansFor(context.Background(), "alice")
	if err != nil {
		t.Fatalf("PlansFor: %v", err)
	}
	if len(plans) != 2 || plans[0] != "agent" || plans[1] != "premium" {
		t.Errorf("unexpected plans: %v", plans)
	}
	if none, _ := p.PlansFor(context.Background(), "bob"); none != nil {
		t.Errorf("expected no plans for bob, got %v", none)
	}
}

func TestProvider_HasPlan(t *testing.T) {
	p := NewProvider(NewMemoryMetadataStore())
	ctx := WithIdentity(context.Background(), &Identity{ID: "a", Plans: []string{PlanAgent}})
	if !p.HasPlan(ctx, PlanAgent) {
		t.Error("expected agent plan")
	}
	if p.HasPlan(ctx, "enterprise") {
		t.Error("expected no enterprise plan")
	}
}
