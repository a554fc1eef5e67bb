package service

import (
	"context"
	"errors"
	"time"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/repository"
	"github.com/homestead/backend/internal/search"
	"golang.org/x/sync/errgroup"
)

// ListingServiceImpl は ListingService の実装
type ListingServiceImpl struct {
	listings repository.ListingRepository
	agents   repository.AgentRepository
	pageSize int
	now      func() time.Time
}

// NewListingService は ListingServiceImpl を生成する
func NewListingService(listings repository.ListingRepository, agents repository.AgentRepository, pageSize int) ListingService {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &ListingServiceImpl{listings: listings, agents: agents, pageSize: pageSize, now: time.Now}
}

// Search compiles the criteria once and issues the page and count queries
// in parallel.
func (s *ListingServiceImpl) Search(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error) {
	page = search.ClampPage(page)
	q := search.Compile(c, s.now(), search.PageNumber(page, s.pageSize))

	var listings []*model.Listing
	var total int
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		listings, err = s.listings.Search(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.listings.Count(gctx, q.CountQuery())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if listings == nil {
		listings = []*model.Listing{}
	}
	return &model.ListingPage{
		Listings:   listings,
		Total:      total,
		Page:       page,
		PageSize:   s.pageSize,
		TotalPages: (total + s.pageSize - 1) / s.pageSize,
	}, nil
}

// Get returns the listing with its agent. A missing agent profile is not an error.
func (s *ListingServiceImpl) Get(ctx context.Context, id string) (*model.ListingDetail, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &model.ListingDetail{Listing: l}
	if l.AgentID == "" {
		return detail, nil
	}
	agent, err := s.agents.GetByID(ctx, l.AgentID)
	switch {
	case err == nil:
		detail.Agent = agent
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}
	return detail, nil
}

// Featured returns the newest active listings flagged as featured.
func (s *ListingServiceImpl) Featured(ctx context.Context) ([]*model.Listing, error) {
	q := search.Query{
		Where: search.Conjoin(
			search.ActiveOnly(),
			search.Compare{Field: search.FieldFeatured, Op: search.OpEq, Value: true},
		),
		OrderBy: search.DefaultOrder,
		Limit:   FeaturedLimit,
	}
	return s.listings.Search(ctx, q)
}
