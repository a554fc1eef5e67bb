package model

import "time"

// LeadStatus tracks an agent's follow-up on a lead.
type LeadStatus string

const (
	LeadNew       LeadStatus = "new"
	LeadContacted LeadStatus = "contacted"
	LeadClosed    LeadStatus = "closed"
)

// LeadStatuses lists every lead status.
var LeadStatuses = []LeadStatus{LeadNew, LeadContacted, LeadClosed}

// Valid reports whether s is one of LeadStatuses.
func (s LeadStatus) Valid() bool {
	switch s {
	case LeadNew, LeadContacted, LeadClosed:
		return true
	}
	return false
}

// Lead is a buyer's request to be contacted about a listing.
// At most one lead exists per (ListingID, BuyerEmail).
type Lead struct {
	ID         string     `json:"id" bson:"_id"`
	ListingID  string     `json:"listing_id" bson:"listingId"`
	AgentID    string     `json:"agent_id" bson:"agentId"`
	BuyerName  string     `json:"buyer_name" bson:"buyerName"`
	BuyerEmail string     `json:"buyer_email" bson:"buyerEmail"`
	BuyerPhone string     `json:"buyer_phone,omitempty" bson:"buyerPhone,omitempty"`
	Message    string     `json:"message,omitempty" bson:"message,omitempty"`
	Status     LeadStatus `json:"status" bson:"status"`
	CreatedAt  time.Time  `json:"created_at" bson:"createdAt"`

	// Transient: resolved for the dashboard lead list.
	ListingTitle string `json:"listing_title,omitempty" bson:"-"`
}
