package service

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
)

// AmenityService serves the amenity catalog used by the search filters and
// the listing editor.
type AmenityService interface {
	List(ctx context.Context) ([]*model.Amenity, error)
}

type amenityServiceImpl struct {
	repo repository.AmenityRepository
}

// NewAmenityService は AmenityService を生成する
func NewAmenityService(repo repository.AmenityRepository) AmenityService {
	return &amenityServiceImpl{repo: repo}
}

func (s *amenityServiceImpl) List(ctx context.Context) ([]*model.Amenity, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*model.Amenity{}
	}
	return list, nil
}
