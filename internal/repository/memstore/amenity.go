package memstore

import (
	"cmp"
	"context"
	"slices"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
)

type AmenityRepository struct {
	s *Store
}

var _ repository.AmenityRepository = (*AmenityRepository)(nil)

func (r *AmenityRepository) List(ctx context.Context) ([]*model.Amenity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*model.Amenity, 0, len(r.s.amenities))
	for _, a := range r.s.amenities {
		c := *a
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *model.Amenity) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.Label, b.Label)
	})
	return out, nil
}

func (r *AmenityRepository) Upsert(ctx context.Context, a *model.Amenity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if old, ok := r.s.amenities[a.Value]; ok {
		a.ID = old.ID
	} else if a.ID == "" {
		a.ID = r.s.newID()
	}
	c := *a
	r.s.amenities[a.Value] = &c
	return nil
}
