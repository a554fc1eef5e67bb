package model

import "time"

// PropertyType is the kind of property a listing describes.
type PropertyType string

const (
	PropertyHouse     PropertyType = "house"
	PropertyApartment PropertyType = "apartment"
	PropertyCondo     PropertyType = "condo"
	PropertyTownhouse PropertyType = "townhouse"
	PropertyLand      PropertyType = "land"
)

// PropertyTypes lists every supported property type in display order.
var PropertyTypes = []PropertyType{
	PropertyHouse, PropertyApartment, PropertyCondo, PropertyTownhouse, PropertyLand,
}

// Valid reports whether t is one of PropertyTypes.
func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ListingStatus is the sale state of a listing. Only active listings are searchable.
type ListingStatus string

const (
	StatusActive  ListingStatus = "active"
	StatusPending ListingStatus = "pending"
	StatusSold    ListingStatus = "sold"
)

// ListingStatuses lists every listing status.
var ListingStatuses = []ListingStatus{StatusActive, StatusPending, StatusSold}

// Valid reports whether s is one of ListingStatuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusSold:
		return true
	}
	return false
}

type Address struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	ZipCode string `json:"zip_code" bson:"zipCode"`
}

type GeoPoint struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// Image is a reference to an uploaded asset plus its public URL.
type Image struct {
	AssetRef string `json:"asset_ref" bson:"assetRef"`
	URL      string `json:"url" bson:"url"`
	Alt      string `json:"alt,omitempty" bson:"alt,omitempty"`
}

type Listing struct {
	ID            string        `json:"id" bson:"_id"`
	AgentID       string        `json:"agent_id" bson:"agentId"`
	Title         string        `json:"title" bson:"title"`
	Slug          string        `json:"slug" bson:"slug"`
	Description   string        `json:"description,omitempty" bson:"description,omitempty"`
	Price         float64       `json:"price" bson:"price"`
	OriginalPrice *float64      `json:"original_price,omitempty" bson:"originalPrice,omitempty"`
	PropertyType  PropertyType  `json:"property_type" bson:"propertyType"`
	Status        ListingStatus `json:"status" bson:"status"`
	Bedrooms      int           `json:"bedrooms" bson:"bedrooms"`
	Bathrooms     int           `json:"bathrooms" bson:"bathrooms"`
	SquareFeet    float64       `json:"square_feet" bson:"squareFeet"`
	YearBuilt     int           `json:"year_built,omitempty" bson:"yearBuilt"`
	LotSize       float64       `json:"lot_size,omitempty" bson:"lotSize"`
	Address       Address       `json:"address" bson:"address"`
	Location      *GeoPoint     `json:"location,omitempty" bson:"location,omitempty"`
	Images        []Image       `json:"images,omitempty" bson:"images,omitempty"`
	Amenities     []string      `json:"amenities,omitempty" bson:"amenities,omitempty"`
	Featured      bool          `json:"featured" bson:"featured"`
	OpenHouseAt   *time.Time    `json:"open_house_at,omitempty" bson:"openHouseAt,omitempty"`
	CreatedAt     time.Time     `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time     `json:"updated_at" bson:"updatedAt"`
}

// IsPriceReduced reports whether the current price is below a recorded original price.
func (l *Listing) IsPriceReduced() bool {
	return l.OriginalPrice != nil && l.Price < *l.OriginalPrice
}

// ListingPage is one page of search results with the total hit count.
type ListingPage struct {
	Listings   []*Listing `json:"listings"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// ListingDetail is a listing together with its agent's public profile.
type ListingDetail struct {
	*Listing
	Agent *Agent `json:"agent,omitempty"`
}
