package repository

import (
	"context"

	"github.com/homestead/backend/internal/model"
	"github.com/homestead/backend/internal/search"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// ListingRepository is the content store for listings. Search and Count
// accept compiled queries; each store renders them into its own syntax.
type ListingRepository interface {
	Search(ctx context.Context, q search.Query) ([]*model.Listing, error)
	Count(ctx context.Context, q search.Query) (int, error)
	GetByID(ctx context.Context, id string) (*model.Listing, error)
	Create(ctx context.Context, l *model.Listing) error
	// Replace overwrites the whole document identified by l.ID.
	Replace(ctx context.Context, l *model.Listing) error
	Delete(ctx context.Context, id string) error
}

// AgentRepository はエージェントプロフィール永続化のインターフェース
type AgentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Agent, error)
	FindByUserID(ctx context.Context, userID string) (*model.Agent, error)
	Create(ctx context.Context, a *model.Agent) error
	Update(ctx context.Context, a *model.Agent) error
}

// LeadRepository はリード永続化のインターフェース
type LeadRepository interface {
	FindByListingAndEmail(ctx context.Context, listingID, email string) (*model.Lead, error)
	Create(ctx context.Context, lead *model.Lead) error
	GetByID(ctx context.Context, id string) (*model.Lead, error)
	// ListByAgent returns the agent's leads, newest first.
	ListByAgent(ctx context.Context, agentID string) ([]*model.Lead, error)
	UpdateStatus(ctx context.Context, id string, status model.LeadStatus) error
	// CountByAgent counts the agent's leads; an empty status counts all of them.
	CountByAgent(ctx context.Context, agentID string, status model.LeadStatus) (int, error)
}

// UserRepository はユーザープロフィール永続化のインターフェース
type UserRepository interface {
	FindByAuthID(ctx context.Context, authID string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}

// SavedRepository stores each user's saved-listing set.
type SavedRepository interface {
	IsSaved(ctx context.Context, userID, listingID string) (bool, error)
	// Add is idempotent: saving an already saved listing is a no-op.
	Add(ctx context.Context, userID, listingID string) error
	// Remove is idempotent: removing an unsaved listing is a no-op.
	Remove(ctx context.Context, userID, listingID string) error
	ListListings(ctx context.Context, userID string) ([]*model.Listing, error)
}

// AmenityRepository はアメニティカタログ永続化のインターフェース
type AmenityRepository interface {
	// List returns the catalog ordered by (order, label).
	List(ctx context.Context) ([]*model.Amenity, error)
	// Upsert inserts or updates the entry keyed by a.Value.
	Upsert(ctx context.Context, a *model.Amenity) error
}
