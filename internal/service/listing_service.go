package service

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
)

// FeaturedLimit is the number of listings shown on the home page.
const FeaturedLimit = 6

// ListingService is the public, read-only side of listings.
type ListingService interface {
	// Search returns one page of active listings matching c. page is 1-based.
	Search(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error)
	// Get returns a listing with its agent, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.ListingDetail, error)
	Featured(ctx context.Context) ([]*model.Listing, error)
}
