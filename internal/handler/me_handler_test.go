package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homestead/backend/pkg/auth"
)

func TestMeHandler_Anonymous_Returns401(t *testing.T) {
	h := NewMeHandler(auth.NewProvider(auth.NewMemoryMetadataStore()))
	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest("GET", "/api/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestMeHandler_ReturnsIdentityAndFlags(t *testing.T) {
	meta := auth.NewMemoryMetadataStore()
	_ = meta.Set(context.Background(), "u1", auth.MetaOnboardingComplete, "true")
	h := NewMeHandler(auth.NewProvider(meta))

	req := httptest.NewRequest("GET", "/api/me", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{
		ID: "u1", Email: "u1@example.com", Name: "U One", Plans: []string{auth.PlanAgent},
	}))
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp meResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != "u1" || !resp.IsAgent || !resp.OnboardingComplete || resp.AgentOnboardingComplete {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestMeHandler_Gate(t *testing.T) {
	h := NewMeHandler(auth.NewProvider(auth.NewMemoryMetadataStore()))

	rec := httptest.NewRecorder()
	h.Gate(rec, httptest.NewRequest("GET", "/api/auth/gate?path=/dashboard", nil))
	var d auth.Decision
	if err := json.NewDecoder(rec.Body).Decode(&d); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Class != auth.ClassRequiresAgentPlan || d.Reason != auth.ReasonAuthRequired {
		t.Errorf("unexpected decision %+v", d)
	}
	if d.Redirect != "/sign-in?redirect_url=%2Fdashboard" {
		t.Errorf("unexpected redirect %q", d.Redirect)
	}

	rec = httptest.NewRecorder()
	h.Gate(rec, httptest.NewRequest("GET", "/api/auth/gate", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without path, got %d", rec.Code)
	}
}
