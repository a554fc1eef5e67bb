package search

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/homestead/backend/internal/model"
)

// Matches evaluates c against a single listing in memory.
func Matches(c Clause, l *model.Listing) bool {
	switch c := c.(type) {
	case nil, Always:
		return true
	case And:
		for _, inner := range c {
			if !Matches(inner, l) {
				return false
			}
		}
		return true
	case Or:
		for _, inner := range c {
			if Matches(inner, l) {
				return true
			}
		}
		return false
	case Compare:
		v, ok := fieldValue(l, c.Field)
		return ok && compareValues(v, c.Value, c.Op)
	case CompareFields:
		left, ok := fieldValue(l, c.Left)
		if !ok {
			return false
		}
		right, ok := fieldValue(l, c.Right)
		return ok && compareValues(left, right, c.Op)
	case NotNull:
		_, ok := fieldValue(l, c.Field)
		return ok
	case Prefix:
		v, ok := fieldValue(l, c.Field)
		s, isString := v.(string)
		return ok && isString && strings.HasPrefix(strings.ToLower(s), strings.ToLower(c.Text))
	case ContainsAll:
		if c.Field != FieldAmenities {
			return false
		}
		for _, want := range c.Values {
			if !slices.Contains(l.Amenities, want) {
				return false
			}
		}
		return true
	}
	return false
}

// Select applies q to an in-memory collection and returns the requested
// slice together with the total match count.
func Select(q Query, listings []*model.Listing) ([]*model.Listing, int) {
	var hits []*model.Listing
	for _, l := range listings {
		if Matches(q.Where, l) {
			hits = append(hits, l)
		}
	}
	total := len(hits)
	if len(q.OrderBy) > 0 {
		slices.SortStableFunc(hits, func(a, b *model.Listing) int {
			return compareListings(a, b, q.OrderBy)
		})
	}
	start := min(q.Offset, total)
	end := total
	if q.Limit > 0 {
		end = min(start+q.Limit, total)
	}
	return hits[start:end], total
}

func compareListings(a, b *model.Listing, orders []Order) int {
	for _, o := range orders {
		av, _ := fieldValue(a, o.Field)
		bv, _ := fieldValue(b, o.Field)
		c := orderValues(av, bv)
		if o.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

// fieldValue returns the listing's value for f, or false when the field is
// unset. Numbers are returned as float64.
func fieldValue(l *model.Listing, f Field) (any, bool) {
	switch f {
	case FieldID:
		return l.ID, true
	case FieldStatus:
		return string(l.Status), true
	case FieldPrice:
		return l.Price, true
	case FieldOriginalPrice:
		if l.OriginalPrice == nil {
			return nil, false
		}
		return *l.OriginalPrice, true
	case FieldBedrooms:
		return float64(l.Bedrooms), true
	case FieldBathrooms:
		return float64(l.Bathrooms), true
	case FieldPropertyType:
		return string(l.PropertyType), true
	case FieldCity:
		return l.Address.City, true
	case FieldState:
		return l.Address.State, true
	case FieldZipCode:
		return l.Address.ZipCode, true
	case FieldSquareFeet:
		return l.SquareFeet, true
	case FieldYearBuilt:
		return float64(l.YearBuilt), true
	case FieldLotSize:
		return l.LotSize, true
	case FieldCreatedAt:
		return l.CreatedAt, true
	case FieldOpenHouseAt:
		if l.OpenHouseAt == nil {
			return nil, false
		}
		return *l.OpenHouseAt, true
	case FieldFeatured:
		return l.Featured, true
	case FieldAgentID:
		return l.AgentID, true
	}
	return nil, false
}

func compareValues(left, right any, op Op) bool {
	c, ok := compareAny(left, right)
	if !ok {
		return false
	}
	switch op {
	case OpEq:
		return c == 0
	case OpLt:
		return c < 0
	case OpLte:
		return c <= 0
	case OpGte:
		return c >= 0
	}
	return false
}

func orderValues(a, b any) int {
	c, _ := compareAny(a, b)
	return c
}

// compareAny compares two values of compatible kinds; ok is false when the
// kinds differ.
func compareAny(a, b any) (int, bool) {
	switch av := a.(type) {
	case float64:
		bv, ok := toFloat(b)
		return cmp.Compare(av, bv), ok
	case string:
		bv, ok := b.(string)
		return strings.Compare(av, bv), ok
	case time.Time:
		bv, ok := b.(time.Time)
		return av.Compare(bv), ok
	case bool:
		bv, ok := b.(bool)
		if !ok || av == bv {
			return 0, ok
		}
		if av {
			return 1, true
		}
		return -1, true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
