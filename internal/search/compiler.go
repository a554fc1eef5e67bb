package search

import (
	"time"

	"github.com/homestead/backend/internal/model"
)

// Order is one sort key.
type Order struct {
	Field Field
	Desc  bool
}

// DefaultOrder sorts newest first, with the id as a stable tie-break.
var DefaultOrder = []Order{
	{Field: FieldCreatedAt, Desc: true},
	{Field: FieldID},
}

// Page is a zero-based slice [Start, Start+Size) of the ordered results.
type Page struct {
	Start int
	Size  int
}

// MaxPage is the highest page number served; larger requests are clamped.
const MaxPage = 10000

// PageNumber converts a 1-based page number into a Page. n is clamped to
// [1, MaxPage].
func PageNumber(n, size int) Page {
	n = ClampPage(n)
	return Page{Start: (n - 1) * size, Size: size}
}

// ClampPage limits a 1-based page number to [1, MaxPage].
func ClampPage(n int) int {
	return min(max(n, 1), MaxPage)
}

// Query is a compiled, store-independent listing query.
type Query struct {
	Where   Clause
	OrderBy []Order
	Offset  int
	// Limit of 0 means unbounded.
	Limit int
}

// CountQuery returns the same predicate without ordering or slicing, for
// computing the total number of matches.
func (q Query) CountQuery() Query {
	return Query{Where: q.Where}
}

// ActiveOnly is the base predicate applied to every search.
func ActiveOnly() Clause {
	return Compare{Field: FieldStatus, Op: OpEq, Value: string(model.StatusActive)}
}

// Compile translates criteria into a query evaluated at now. Each inactive
// filter compiles to Always, so default criteria reduce to ActiveOnly.
// Inverted bounds are not rejected; they yield an empty result.
func Compile(c Criteria, now time.Time, page Page) Query {
	c = c.Normalize()
	where := Conjoin(
		ActiveOnly(),
		lowerBound(FieldPrice, c.PriceMin),
		upperBound(FieldPrice, c.PriceMax),
		countClause(FieldBedrooms, c.Beds),
		countClause(FieldBathrooms, c.Baths),
		typeClause(c.Type),
		locationClause(c.Location),
		lowerBound(FieldSquareFeet, c.SqftMin),
		upperBound(FieldSquareFeet, c.SqftMax),
		lowerBound(FieldYearBuilt, c.YearMin),
		upperBound(FieldYearBuilt, c.YearMax),
		lowerBound(FieldLotSize, c.LotMin),
		upperBound(FieldLotSize, c.LotMax),
		recencyClause(c.ListedWithinDays, now),
		openHouseClause(c.OpenHouse, now),
		priceReducedClause(c.PriceReduced),
		amenityClause(c.Amenities),
	)
	return Query{
		Where:   where,
		OrderBy: DefaultOrder,
		Offset:  max(page.Start, 0),
		Limit:   max(page.Size, 0),
	}
}

func lowerBound[T int | float64](f Field, v T) Clause {
	if v == 0 {
		return Always{}
	}
	return Compare{Field: f, Op: OpGte, Value: v}
}

func upperBound[T int | float64](f Field, v T) Clause {
	if v == 0 {
		return Always{}
	}
	return Compare{Field: f, Op: OpLte, Value: v}
}

func countClause(f Field, c Count) Clause {
	switch {
	case c.IsZero():
		return Always{}
	case c.AtLeast:
		return Compare{Field: f, Op: OpGte, Value: c.N}
	default:
		return Compare{Field: f, Op: OpEq, Value: c.N}
	}
}

func typeClause(t model.PropertyType) Clause {
	if t == "" {
		return Always{}
	}
	return Compare{Field: FieldPropertyType, Op: OpEq, Value: string(t)}
}

func locationClause(text string) Clause {
	if text == "" {
		return Always{}
	}
	return Or{
		Prefix{Field: FieldCity, Text: text},
		Prefix{Field: FieldState, Text: text},
		Prefix{Field: FieldZipCode, Text: text},
	}
}

// maxRecencyDays caps daysOnMarket so the cutoff stays a representable date.
const maxRecencyDays = 1_000_000

func recencyClause(days int, now time.Time) Clause {
	if days == 0 {
		return Always{}
	}
	since := now.AddDate(0, 0, -min(days, maxRecencyDays))
	return Compare{Field: FieldCreatedAt, Op: OpGte, Value: since}
}

func openHouseClause(on bool, now time.Time) Clause {
	if !on {
		return Always{}
	}
	return And{
		NotNull{Field: FieldOpenHouseAt},
		Compare{Field: FieldOpenHouseAt, Op: OpGte, Value: now},
	}
}

func priceReducedClause(on bool) Clause {
	if !on {
		return Always{}
	}
	return And{
		NotNull{Field: FieldOriginalPrice},
		CompareFields{Left: FieldPrice, Op: OpLt, Right: FieldOriginalPrice},
	}
}

func amenityClause(amenities []string) Clause {
	if len(amenities) == 0 {
		return Always{}
	}
	return ContainsAll{Field: FieldAmenities, Values: amenities}
}
