package auth

import (
	"context"
	"errors"
	"slices"
	"strings"
)

// PlanAgent is the entitlement that unlocks the agent dashboard.
const PlanAgent = "agent"

// Metadata keys kept per identity.
const (
	MetaOnboardingComplete      = "onboardingComplete"
	MetaAgentOnboardingComplete = "agentOnboardingComplete"
	MetaPlans                   = "plans"
)

// ErrNoIdentity is returned by metadata operations on an anonymous request.
var ErrNoIdentity = errors.New("no identity in context")

// Identity is the signed-in caller as asserted by the session token.
type Identity struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Plans []string `json:"plans,omitempty"`
}

// HasPlan reports whether the identity holds the named plan.
func (i *Identity) HasPlan(plan string) bool {
	return slices.Contains(i.Plans, plan)
}

// IdentityProvider is the caller-identity capability consumed by services
// and the route gate.
type IdentityProvider interface {
	CurrentIdentity(ctx context.Context) (*Identity, bool)
	HasPlan(ctx context.Context, plan string) bool
	Metadata(ctx context.Context, key string) (string, error)
	SetMetadata(ctx context.Context, key, value string) error
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity は context に Identity をセットする
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext は context から Identity を取得する
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok && id != nil
}

// Provider implements IdentityProvider from the request identity plus a
// per-identity metadata store.
type Provider struct {
	store MetadataStore
}

// NewProvider は Provider を生成する
func NewProvider(store MetadataStore) *Provider {
	return &Provider{store: store}
}

var _ IdentityProvider = (*Provider)(nil)

func (p *Provider) CurrentIdentity(ctx context.Context) (*Identity, bool) {
	return IdentityFromContext(ctx)
}

func (p *Provider) HasPlan(ctx context.Context, plan string) bool {
	id, ok := IdentityFromContext(ctx)
	return ok && id.HasPlan(plan)
}

func (p *Provider) Metadata(ctx context.Context, key string) (string, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return "", ErrNoIdentity
	}
	return p.store.Get(ctx, id.ID, key)
}

func (p *Provider) SetMetadata(ctx context.Context, key, value string) error {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return ErrNoIdentity
	}
	return p.store.Set(ctx, id.ID, key, value)
}

// PlansFor returns the plans recorded for identityID, used when minting a
// session.
func (p *Provider) PlansFor(ctx context.Context, identityID string) ([]string, error) {
	v, err := p.store.Get(ctx, identityID, MetaPlans)
	if err != nil || v == "" {
		return nil, err
	}
	var plans []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			plans = append(plans, s)
		}
	}
	return plans, nil
}

// Flag reads a boolean metadata value. Lookup failures read as false.
func Flag(ctx context.Context, p IdentityProvider, key string) bool {
	v, err := p.Metadata(ctx, key)
	return err == nil && v == "true"
}
