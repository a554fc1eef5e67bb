package service

import (
	"context"
	"io"
	"time"

	"github.com/homestead/backend/internal/model"
)

// TopListingsLimit caps the leads-per-listing ranking in Analytics.
const TopListingsLimit = 10

// ListingInput is the whole listing document as edited on the dashboard.
// Replace overwrites every field with these values.
type ListingInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Price         float64             `json:"price"`
	OriginalPrice *float64            `json:"original_price"`
	PropertyType  model.PropertyType  `json:"property_type"`
	Status        model.ListingStatus `json:"status"`
	Bedrooms      int                 `json:"bedrooms"`
	Bathrooms     int                 `json:"bathrooms"`
	SquareFeet    float64             `json:"square_feet"`
	YearBuilt     int                 `json:"year_built"`
	LotSize       float64             `json:"lot_size"`
	Address       model.Address       `json:"address"`
	Location      *model.GeoPoint     `json:"location"`
	Images        []model.Image       `json:"images"`
	Amenities     []string            `json:"amenities"`
	Featured      bool                `json:"featured"`
	OpenHouseAt   *time.Time          `json:"open_house_at"`
}

// ImageUpload is an image file attached to a listing.
type ImageUpload struct {
	Data        io.Reader
	ContentType string
	Ext         string
	Alt         string
}

// DashboardService backs the agent dashboard. Every operation acts on the
// calling agent's own listings and leads.
type DashboardService interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
	Analytics(ctx context.Context) (*model.Analytics, error)
	// Listings returns the agent's listings in every status, newest first.
	Listings(ctx context.Context) ([]*model.Listing, error)
	CreateListing(ctx context.Context, in ListingInput) (*model.Listing, error)
	ReplaceListing(ctx context.Context, id string, in ListingInput) (*model.Listing, error)
	DeleteListing(ctx context.Context, id string) error
	// AttachImage uploads the file to asset storage and appends it to the
	// listing's images.
	AttachImage(ctx context.Context, id string, img ImageUpload) (*model.Image, error)
}
