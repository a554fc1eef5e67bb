package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
)

// ---------------------------------------------------------------------------
// mockListingRepository は ListingRepository のモック
// ---------------------------------------------------------------------------

type mockListingRepository struct {
	searchFunc func(ctx context.Context, q search.Query) ([]*model.Listing, error)
	countFunc  func(ctx context.Context, q search.Query) (int, error)
}

func (m *mockListingRepository) Search(ctx context.Context, q search.Query) ([]*model.Listing, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, q)
	}
	return nil, nil
}

func (m *mockListingRepository) Count(ctx context.Context, q search.Query) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, q)
	}
	return 0, nil
}

func (m *mockListingRepository) GetByID(ctx context.Context, id string) (*model.Listing, error) {
	return nil, ErrNotFound
}

func (m *mockListingRepository) Create(ctx context.Context, l *model.Listing) error  { return nil }
func (m *mockListingRepository) Replace(ctx context.Context, l *model.Listing) error { return nil }
func (m *mockListingRepository) Delete(ctx context.Context, id string) error         { return nil }

// ---------------------------------------------------------------------------
// Tests: ListingService.Search
// ---------------------------------------------------------------------------

func TestListingService_Search_PagesAndCounts(t *testing.T) {
	var pageQ, countQ search.Query
	repo := &mockListingRepository{
		searchFunc: func(ctx context.Context, q search.Query) ([]*model.Listing, error) {
			pageQ = q
			return []*model.Listing{{ID: "l1"}}, nil
		},
		countFunc: func(ctx context.Context, q search.Query) (int, error) {
			countQ = q
			return 25, nil
		},
	}

	svc := NewListingService(repo, nil, 10)
	page, err := svc.Search(context.Background(), search.Criteria{}, 3)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 25 || page.TotalPages != 3 || page.Page != 3 || page.PageSize != 10 {
		t.Errorf("unexpected page %+v", page)
	}
	if pageQ.Offset != 20 || pageQ.Limit != 10 {
		t.Errorf("expected slice [20,30), got offset=%d limit=%d", pageQ.Offset, pageQ.Limit)
	}
	if countQ.Limit != 0 || countQ.Offset != 0 || countQ.OrderBy != nil {
		t.Errorf("expected unsliced count query, got %+v", countQ)
	}
}

func TestListingService_Search_EmptyResult(t *testing.T) {
	svc := NewListingService(&mockListingRepository{}, nil, 12)
	page, err := svc.Search(context.Background(), search.Criteria{PriceMin: 10, PriceMax: 5}, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Listings == nil || len(page.Listings) != 0 || page.Page != 1 || page.TotalPages != 0 {
		t.Errorf("expected empty first page, got %+v", page)
	}
}

func TestListingService_Search_HugePageIsClamped(t *testing.T) {
	var pageQ search.Query
	repo := &mockListingRepository{
		searchFunc: func(ctx context.Context, q search.Query) ([]*model.Listing, error) {
			pageQ = q
			return nil, nil
		},
	}
	page, err := NewListingService(repo, nil, 12).Search(context.Background(), search.Criteria{}, math.MaxInt)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Page != search.MaxPage {
		t.Errorf("expected echoed page %d, got %d", search.MaxPage, page.Page)
	}
	if want := (search.MaxPage - 1) * 12; pageQ.Offset != want {
		t.Errorf("expected offset %d, got %d", want, pageQ.Offset)
	}
}

func TestListingService_Search_PropagatesCountError(t *testing.T) {
	repo := &mockListingRepository{
		countFunc: func(ctx context.Context, q search.Query) (int, error) {
			return 0, errors.New("db error")
		},
	}
	if _, err := NewListingService(repo, nil, 12).Search(context.Background(), search.Criteria{}, 1); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestListingService_Search_FiltersActiveListings(t *testing.T) {
	f := newFixture()
	active := f.listing(t, "agent-1", "Active")
	sold := &model.Listing{Title: "Sold", Status: model.StatusSold, PropertyType: model.PropertyHouse}
	if err := f.store.Listings().Create(context.Background(), sold); err != nil {
		t.Fatalf("Create: %v", err)
	}

	svc := NewListingService(f.store.Listings(), f.store.Agents(), 12)
	page, err := svc.Search(context.Background(), search.Criteria{}, 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 1 || page.Listings[0].ID != active.ID {
		t.Errorf("expected only the active listing, got %+v", page)
	}
}

// ---------------------------------------------------------------------------
// Tests: ListingService.Get / Featured
// ---------------------------------------------------------------------------

func TestListingService_Get(t *testing.T) {
	f := newFixture()
	_, agent := f.agent(t, "agent-user-1")
	l := f.listing(t, agent.ID, "With agent")
	orphan := f.listing(t, "deleted-agent", "Orphan")
	svc := NewListingService(f.store.Listings(), f.store.Agents(), 12)

	d, err := svc.Get(context.Background(), l.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if d.Agent == nil || d.Agent.ID != agent.ID {
		t.Errorf("expected agent attached, got %+v", d.Agent)
	}

	d, err = svc.Get(context.Background(), orphan.ID)
	if err != nil {
		t.Fatalf("Get orphan: %v", err)
	}
	if d.Agent != nil {
		t.Errorf("expected no agent, got %+v", d.Agent)
	}

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListingService_Featured(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < FeaturedLimit+2; i++ {
		l := &model.Listing{
			Title:     "featured",
			Status:    model.StatusActive,
			Featured:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		if err := f.store.Listings().Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	f.listing(t, "agent-1", "not featured")
	pending := &model.Listing{Title: "pending", Status: model.StatusPending, Featured: true, CreatedAt: base.Add(48 * time.Hour)}
	if err := f.store.Listings().Create(ctx, pending); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := NewListingService(f.store.Listings(), f.store.Agents(), 12).Featured(ctx)
	if err != nil {
		t.Fatalf("Featured: %v", err)
	}
	if len(got) != FeaturedLimit {
		t.Fatalf("expected %d listings, got %d", FeaturedLimit, len(got))
	}
	for i, l := range got {
		if !l.Featured || l.Status != model.StatusActive {
			t.Errorf("unexpected listing %+v", l)
		}
		if i > 0 && l.CreatedAt.After(got[i-1].CreatedAt) {
			t.Error("expected newest first")
		}
	}
}
