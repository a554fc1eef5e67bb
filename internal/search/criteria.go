// Package search holds the listing search filter model, its URL parameter
// codec, and the compiler that turns criteria into store-independent clauses.
package search

import (
	"strings"

	"github.com/homestead/backend/internal/model"
)

// Count is a bedroom or bathroom threshold. N == 0 means any; AtLeast turns
// an exact match into "N or more".
type Count struct {
	N       int
	AtLeast bool
}

// IsZero reports whether the count filter is inactive.
func (c Count) IsZero() bool { return c.N <= 0 }

func (c Count) normalize() Count {
	if c.N <= 0 {
		return Count{}
	}
	return c
}

// Criteria is the full set of search filters. Every numeric bound uses 0 for
// "unbounded"; the zero value matches every active listing.
type Criteria struct {
	PriceMin float64
	PriceMax float64
	Beds     Count
	Baths    Count
	// Type is empty for any property type.
	Type model.PropertyType
	// Location is matched as a case-insensitive prefix of city, state or zip code.
	Location string
	SqftMin  float64
	SqftMax  float64
	YearMin  int
	YearMax  int
	LotMin   float64
	LotMax   float64
	// ListedWithinDays restricts results to listings created in the last N days.
	ListedWithinDays int
	OpenHouse        bool
	PriceReduced     bool
	// Amenities must all be present on a listing. No duplicates after Normalize.
	Amenities []string
}

// Reset returns the all-defaults criteria.
func (c Criteria) Reset() Criteria { return Criteria{} }

// Normalize clamps out-of-range values to their inactive default, drops
// unknown property types and removes empty or duplicate amenities. Bound
// ordering is left alone: an inverted range simply matches nothing.
func (c Criteria) Normalize() Criteria {
	n := c
	n.PriceMin = nonNegative(c.PriceMin)
	n.PriceMax = nonNegative(c.PriceMax)
	n.SqftMin = nonNegative(c.SqftMin)
	n.SqftMax = nonNegative(c.SqftMax)
	n.LotMin = nonNegative(c.LotMin)
	n.LotMax = nonNegative(c.LotMax)
	n.YearMin = max(c.YearMin, 0)
	n.YearMax = max(c.YearMax, 0)
	n.ListedWithinDays = max(c.ListedWithinDays, 0)
	n.Beds = c.Beds.normalize()
	n.Baths = c.Baths.normalize()
	if !c.Type.Valid() {
		n.Type = ""
	}
	n.Location = strings.TrimSpace(c.Location)
	n.Amenities = uniqueAmenities(c.Amenities)
	return n
}

// IsActive reports whether any filter differs from its default.
func (c Criteria) IsActive() bool {
	n := c.Normalize()
	return n.PriceMin != 0 || n.PriceMax != 0 ||
		!n.Beds.IsZero() || !n.Baths.IsZero() ||
		n.Type != "" || n.Location != "" ||
		n.SqftMin != 0 || n.SqftMax != 0 ||
		n.YearMin != 0 || n.YearMax != 0 ||
		n.LotMin != 0 || n.LotMax != 0 ||
		n.ListedWithinDays != 0 ||
		n.OpenHouse || n.PriceReduced ||
		len(n.Amenities) > 0
}

func nonNegative(v float64) float64 {
	// NaN fails every comparison, so it falls through to 0 as well.
	if v > 0 {
		return v
	}
	return 0
}

func uniqueAmenities(in []string) []string {
	var out []string
	seen := make(map[string]bool, len(in))
	for _, item := range in {
		// A comma would split the value apart in the URL form.
		for _, a := range strings.Split(item, ",") {
			a = strings.TrimSpace(a)
			if a == "" || seen[a] {
				continue
			}
			seen[a] = true
			out = append(out, a)
		}
	}
	return out
}
