package model

// DashboardStats are the headline counters on the agent dashboard.
type DashboardStats struct {
	Listings int `json:"listings"`
	Leads    int `json:"leads"`
	NewLeads int `json:"new_leads"`
}

// StatusCount is a count keyed by a status value.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ListingLeadCount is the number of leads received by one listing.
type ListingLeadCount struct {
	ListingID string `json:"listing_id" bson:"_id"`
	Title     string `json:"title" bson:"title"`
	LeadCount int    `json:"lead_count" bson:"leadCount"`
}

// Analytics summarises an agent's listings and leads.
type Analytics struct {
	ListingsTotal    int                `json:"listings_total"`
	ListingsByStatus []StatusCount      `json:"listings_by_status"`
	LeadsTotal       int                `json:"leads_total"`
	LeadsByStatus    []StatusCount      `json:"leads_by_status"`
	TopListings      []ListingLeadCount `json:"top_listings"`
}
