package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
)

type SavedRepository struct {
	s *Store
}

var _ repository.SavedRepository = (*SavedRepository)(nil)

func (r *SavedRepository) IsSaved(ctx context.Context, userID, listingID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.saved[userID][listingID]
	return ok, nil
}

func (r *SavedRepository) Add(ctx context.Context, userID, listingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.saved[userID]
	if !ok {
		set = make(map[string]time.Time)
		r.s.saved[userID] = set
	}
	if _, ok := set[listingID]; !ok {
		set[listingID] = r.s.now()
	}
	return nil
}

func (r *SavedRepository) Remove(ctx context.Context, userID, listingID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.saved[userID], listingID)
	return nil
}

func (r *SavedRepository) ListListings(ctx context.Context, userID string) ([]*model.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	type entry struct {
		listing *model.Listing
		at      time.Time
	}
	var entries []entry
	for id, at := range r.s.saved[userID] {
		if l, ok := r.s.listings[id]; ok {
			entries = append(entries, entry{copyListing(l), at})
		}
	}
	slices.SortFunc(entries, func(a, b entry) int {
		if c := b.at.Compare(a.at); c != 0 {
			return c
		}
		return cmp.Compare(a.listing.ID, b.listing.ID)
	})
	listings := make([]*model.Listing, 0, len(entries))
	for _, e := range entries {
		listings = append(listings, e.listing)
	}
	return listings, nil
}
