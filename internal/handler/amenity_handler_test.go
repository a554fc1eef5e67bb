package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homestead/backend/internal/model"
)

type mockAmenityService struct {
	listFunc func(ctx context.Context) ([]*model.Amenity, error)
}

func (m *mockAmenityService) List(ctx context.Context) ([]*model.Amenity, error) {
	return m.listFunc(ctx)
}

func TestAmenityHandler_List(t *testing.T) {
	mock := &mockAmenityService{
		listFunc: func(ctx context.Context) ([]*model.Amenity, error) {
			return []*model.Amenity{{ID: "pool", Value: "pool", Label: "Pool"}}, nil
		},
	}
	rec := httptest.NewRecorder()
	NewAmenityHandler(mock).List(rec, httptest.NewRequest("GET", "/api/amenities", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"label":"Pool"`) {
		t.Errorf("unexpected body %s", rec.Body.String())
	}
}

func TestAmenityHandler_List_Error(t *testing.T) {
	mock := &mockAmenityService{
		listFunc: func(ctx context.Context) ([]*model.Amenity, error) {
			return nil, errors.New("db down")
		},
	}
	rec := httptest.NewRecorder()
	NewAmenityHandler(mock).List(rec, httptest.NewRequest("GET", "/api/amenities", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
