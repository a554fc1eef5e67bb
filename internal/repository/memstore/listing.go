package memstore

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/search"
)

// ListingRepository evaluates compiled queries with search.Select.
type ListingRepository struct {
	s *Store
}

var _ repository.ListingRepository = (*ListingRepository)(nil)

func (r *ListingRepository) snapshot() []*model.Listing {
	all := make([]*model.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		all = append(all, l)
	}
	return all
}

func (r *ListingRepository) Search(ctx context.Context, q search.Query) ([]*model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	hits, _ := search.Select(q, r.snapshot())
	out := make([]*model.Listing, 0, len(hits))
	for _, l := range hits {
		out = append(out, copyListing(l))
	}
	return out, nil
}

func (r *ListingRepository) Count(ctx context.Context, q search.Query) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, total := search.Select(q.CountQuery(), r.snapshot())
	return total, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return copyListing(l), nil
}

func (r *ListingRepository) Create(ctx context.Context, l *model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = r.s.newID()
	}
	now := r.s.now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	l.UpdatedAt = now
	r.s.listings[l.ID] = copyListing(l)
	return nil
}

func (r *ListingRepository) Replace(ctx context.Context, l *model.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	old, ok := r.s.listings[l.ID]
	if !ok {
		return repository.ErrNotFound
	}
	l.AgentID = old.AgentID
	l.CreatedAt = old.CreatedAt
	l.UpdatedAt = r.s.now()
	r.s.listings[l.ID] = copyListing(l)
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.listings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.listings, id)
	for _, set := range r.s.saved {
		delete(set, id)
	}
	return nil
}
