package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
	"github.com/homestead/backend/internal/service"
)

// ---------------------------------------------------------------------------
// mockListingService は ListingService のモック
// ---------------------------------------------------------------------------

type mockListingService struct {
	searchFunc   func(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error)
	getFunc      func(ctx context.Context, id string) (*model.ListingDetail, error)
	featuredFunc func(ctx context.Context) ([]*model.Listing, error)
}

func (m *mockListingService) Search(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error) {
	if m.searchFunc != nil {
		return m.searchFunc(ctx, c, page)
	}
	return &model.ListingPage{Listings: []*model.Listing{}, Page: page}, nil
}

func (m *mockListingService) Get(ctx context.Context, id string) (*model.ListingDetail, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *mockListingService) Featured(ctx context.Context) ([]*model.Listing, error) {
	if m.featuredFunc != nil {
		return m.featuredFunc(ctx)
	}
	return nil, nil
}

func listingMux(h *ListingHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/properties", h.Search)
	mux.HandleFunc("GET /api/properties/featured", h.Featured)
	mux.HandleFunc("GET /api/properties/{id}", h.Get)
	return mux
}

// ---------------------------------------------------------------------------
// GET /api/properties
// ---------------------------------------------------------------------------

func TestListingHandler_Search_DecodesCriteria(t *testing.T) {
	var got search.Criteria
	var gotPage int
	mock := &mockListingService{
		searchFunc: func(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error) {
			got, gotPage = c, page
			return &model.ListingPage{Listings: []*model.Listing{{ID: "l1"}}, Total: 1, Page: page, PageSize: 12, TotalPages: 1}, nil
		},
	}

	req := httptest.NewRequest("GET", "/api/properties?beds=5%2B&baths=2&city=malibu&minPrice=abc&amenities=pool,,garage&page=2", nil)
	rec := httptest.NewRecorder()
	listingMux(NewListingHandler(mock)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body: %s", rec.Code, rec.Body.String())
	}
	if got.Beds != (search.Count{N: 5, AtLeast: true}) || got.Baths != (search.Count{N: 2}) {
		t.Errorf("unexpected counts beds=%+v baths=%+v", got.Beds, got.Baths)
	}
	if got.PriceMin != 0 {
		t.Errorf("expected malformed minPrice ignored, got %v", got.PriceMin)
	}
	if len(got.Amenities) != 2 {
		t.Errorf("expected 2 amenities, got %v", got.Amenities)
	}
	if gotPage != 2 {
		t.Errorf("expected page 2, got %d", gotPage)
	}

	var body struct {
		Listings      []*model.Listing `json:"listings"`
		Total         int              `json:"total"`
		Query         string           `json:"query"`
		FiltersActive bool             `json:"filters_active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 1 || len(body.Listings) != 1 || !body.FiltersActive {
		t.Errorf("unexpected body %+v", body)
	}
	q, err := url.ParseQuery(body.Query)
	if err != nil {
		t.Fatalf("parse query: %v", err)
	}
	if q.Get("beds") != "5+" || q.Has("minPrice") || q.Has("page") {
		t.Errorf("expected canonical filter query, got %q", body.Query)
	}
}

func TestListingHandler_Search_NoFilters(t *testing.T) {
	rec := httptest.NewRecorder()
	listingMux(NewListingHandler(&mockListingService{})).ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties", nil))

	var body struct {
		Query         string `json:"query"`
		FiltersActive bool   `json:"filters_active"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Query != "" || body.FiltersActive {
		t.Errorf("expected empty query, got %+v", body)
	}
}

func TestListingHandler_Search_ServiceError(t *testing.T) {
	mock := &mockListingService{
		searchFunc: func(ctx context.Context, c search.Criteria, page int) (*model.ListingPage, error) {
			return nil, errors.New("store unreachable")
		},
	}
	rec := httptest.NewRecorder()
	listingMux(NewListingHandler(mock)).ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// GET /api/properties/{id}, /featured
// ---------------------------------------------------------------------------

func TestListingHandler_Get(t *testing.T) {
	mock := &mockListingService{
		getFunc: func(ctx context.Context, id string) (*model.ListingDetail, error) {
			if id != "l1" {
				return nil, service.ErrNotFound
			}
			return &model.ListingDetail{Listing: &model.Listing{ID: "l1", Title: "Ocean"}, Agent: &model.Agent{ID: "a1"}}, nil
		},
	}
	mux := listingMux(NewListingHandler(mock))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties/l1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["title"] != "Ocean" || body["agent"] == nil {
		t.Errorf("expected flattened listing with agent, got %v", body)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestListingHandler_Featured_EmptyIsArray(t *testing.T) {
	rec := httptest.NewRecorder()
	listingMux(NewListingHandler(&mockListingService{})).ServeHTTP(rec, httptest.NewRequest("GET", "/api/properties/featured", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"listings\":[]}\n" {
		t.Errorf("expected empty array, got %q", got)
	}
}
