package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
)

type LeadRepository struct {
	s *Store
}

var _ repository.LeadRepository = (*LeadRepository)(nil)

func (r *LeadRepository) FindByListingAndEmail(ctx context.Context, listingID, email string) (*model.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var found *model.Lead
	for _, l := range r.s.leads {
		if l.ListingID == listingID && l.BuyerEmail == email {
			if found == nil || l.CreatedAt.Before(found.CreatedAt) {
				found = l
			}
		}
	}
	if found == nil {
		return nil, repository.ErrNotFound
	}
	c := *found
	return &c, nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if lead.ID == "" {
		lead.ID = r.s.newID()
	}
	lead.CreatedAt = r.s.now()
	c := *lead
	c.ListingTitle = ""
	r.s.leads[lead.ID] = &c
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*model.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.leads[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := *l
	return &c, nil
}

func (r *LeadRepository) ListByAgent(ctx context.Context, agentID string) ([]*model.Lead, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	leads := []*model.Lead{}
	for _, l := range r.s.leads {
		if l.AgentID != agentID {
			continue
		}
		c := *l
		if listing, ok := r.s.listings[l.ListingID]; ok {
			c.ListingTitle = listing.Title
		}
		leads = append(leads, &c)
	}
	slices.SortFunc(leads, func(a, b *model.Lead) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return leads, nil
}

func (r *LeadRepository) UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.leads[id]
	if !ok {
		return repository.ErrNotFound
	}
	l.Status = status
	return nil
}

func (r *LeadRepository) CountByAgent(ctx context.Context, agentID string, status model.LeadStatus) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, l := range r.s.leads {
		if l.AgentID == agentID && (status == "" || l.Status == status) {
			n++
		}
	}
	return n, nil
}
