package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testPool connects to TEST_DATABASE_URL, which must point at a migrated
// database. Integration tests are skipped in short mode or without it.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	pool, err := NewPool(context.Background(), url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func createTestAgent(t *testing.T, ctx context.Context, pool *pgxpool.Pool, unique string) *model.Agent {
	t.Helper()
	agent := &model.Agent{UserID: "auth-agent-" + unique, Name: "Test Agent", Email: "agent-" + unique + "@example.com"}
	if err := NewPgAgentRepository(pool).Create(ctx, agent); err != nil {
		t.Fatalf("create agent: %v", err)
	}
	return agent
}

func TestPgListingRepository_SearchRendersCompiledQuery(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	unique := fmt.Sprintf("%d", time.Now().UnixNano())
	agent := createTestAgent(t, ctx, pool, unique)

	repo := NewPgListingRepository(pool)
	zip := unique[len(unique)-5:]
	original := 900000.0
	listing := &model.Listing{
		AgentID:       agent.ID,
		Title:         "Integration " + unique,
		Price:         850000,
		OriginalPrice: &original,
		PropertyType:  model.PropertyCondo,
		Status:        model.StatusActive,
		Bedrooms:      5,
		Bathrooms:     3,
		Address:       model.Address{City: "Integration-" + unique, State: "CA", ZipCode: zip},
		Amenities:     []string{"pool", "garage"},
		Images:        []model.Image{{AssetRef: "a1", URL: "/uploads/a1.jpg"}},
	}
	if err := repo.Create(ctx, listing); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), listing.ID) })

	c := search.Criteria{
		Location:     "integration-" + unique,
		Beds:         search.Count{N: 4, AtLeast: true},
		PriceReduced: true,
		Amenities:    []string{"pool"},
		Type:         model.PropertyCondo,
	}
	q := search.Compile(c, time.Now(), search.Page{Size: 10})
	got, err := repo.Search(ctx, q)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != listing.ID {
		t.Fatalf("expected the created listing, got %d results", len(got))
	}
	if len(got[0].Images) != 1 || got[0].Images[0].AssetRef != "a1" {
		t.Errorf("expected images to round-trip, got %+v", got[0].Images)
	}

	n, err := repo.Count(ctx, q)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected count 1, got %d", n)
	}

	c.Amenities = []string{"pool", "gym"}
	none, err := repo.Search(ctx, search.Compile(c, time.Now(), search.Page{Size: 10}))
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no results for a missing amenity, got %d", len(none))
	}
}

func TestPgListingRepository_GetByID_NotFound(t *testing.T) {
	pool := testPool(t)
	_, err := NewPgListingRepository(pool).GetByID(context.Background(), "does-not-exist")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPgSavedAndLeadRepositories(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	unique := fmt.Sprintf("%d", time.Now().UnixNano())
	agent := createTestAgent(t, ctx, pool, unique)

	listing := &model.Listing{AgentID: agent.ID, Title: "Saved " + unique, PropertyType: model.PropertyHouse, Status: model.StatusActive}
	if err := NewPgListingRepository(pool).Create(ctx, listing); err != nil {
		t.Fatalf("create listing: %v", err)
	}
	user := &model.User{AuthID: "auth-user-" + unique, Name: "Buyer", Email: "buyer-" + unique + "@example.com"}
	if err := NewPgUserRepository(pool).Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	saved := NewPgSavedRepository(pool)
	if err := saved.Add(ctx, user.ID, listing.ID); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := saved.Add(ctx, user.ID, listing.ID); err != nil {
		t.Fatalf("second Add should be a no-op: %v", err)
	}
	list, err := saved.ListListings(ctx, user.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one saved listing, got %d (err=%v)", len(list), err)
	}
	if err := saved.Remove(ctx, user.ID, listing.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if ok, _ := saved.IsSaved(ctx, user.ID, listing.ID); ok {
		t.Error("expected listing to be unsaved")
	}

	leads := NewPgLeadRepository(pool)
	lead := &model.Lead{ListingID: listing.ID, AgentID: agent.ID, BuyerEmail: user.Email, Status: model.LeadNew}
	if err := leads.Create(ctx, lead); err != nil {
		t.Fatalf("create lead: %v", err)
	}
	found, err := leads.FindByListingAndEmail(ctx, listing.ID, user.Email)
	if err != nil || found.ID != lead.ID {
		t.Fatalf("expected lead %s, got %+v (err=%v)", lead.ID, found, err)
	}
	byAgent, err := leads.ListByAgent(ctx, agent.ID)
	if err != nil || len(byAgent) != 1 || byAgent[0].ListingTitle != listing.Title {
		t.Errorf("expected one lead with listing title, got %+v (err=%v)", byAgent, err)
	}
	if n, _ := leads.CountByAgent(ctx, agent.ID, model.LeadNew); n != 1 {
		t.Errorf("expected 1 new lead, got %d", n)
	}
}
