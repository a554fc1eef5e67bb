// Package memstore is an in-process implementation of the repository
// interfaces. It backs STORE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/homestead/backend/internal/model"
)

// Store holds every collection behind one lock.
type Store struct {
	mu        sync.RWMutex
	listings  map[string]*model.Listing
	agents    map[string]*model.Agent
	leads     map[string]*model.Lead
	users     map[string]*model.User
	saved     map[string]map[string]time.Time // userID → listingID → saved at
	amenities map[string]*model.Amenity       // keyed by Value

	now   func() time.Time
	newID func() string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		listings:  make(map[string]*model.Listing),
		agents:    make(map[string]*model.Agent),
		leads:     make(map[string]*model.Lead),
		users:     make(map[string]*model.User),
		saved:     make(map[string]map[string]time.Time),
		amenities: make(map[string]*model.Amenity),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// Ping always succeeds.
func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Listings returns the listing repository view of the store.
func (s *Store) Listings() *ListingRepository { return &ListingRepository{s} }

// Agents returns the agent repository view of the store.
func (s *Store) Agents() *AgentRepository { return &AgentRepository{s} }

// Leads returns the lead repository view of the store.
func (s *Store) Leads() *LeadRepository { return &LeadRepository{s} }

// Users returns the user repository view of the store.
func (s *Store) Users() *UserRepository { return &UserRepository{s} }

// Saved returns the saved-listing repository view of the store.
func (s *Store) Saved() *SavedRepository { return &SavedRepository{s} }

// Amenities returns the amenity repository view of the store.
func (s *Store) Amenities() *AmenityRepository { return &AmenityRepository{s} }

func copyListing(l *model.Listing) *model.Listing {
	c := *l
	c.Images = append([]model.Image(nil), l.Images...)
	c.Amenities = append([]string(nil), l.Amenities...)
	return &c
}
