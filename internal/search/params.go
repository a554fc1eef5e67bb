package search

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/homestead/backend/internal/model"
)

// URL parameter keys shared with the frontend filter form.
const (
	KeyPriceMin     = "minPrice"
	KeyPriceMax     = "maxPrice"
	KeyBeds         = "beds"
	KeyBaths        = "baths"
	KeyType         = "type"
	KeyLocation     = "city"
	KeySqftMin      = "minSqft"
	KeySqftMax      = "maxSqft"
	KeyYearMin      = "minYear"
	KeyYearMax      = "maxYear"
	KeyLotMin       = "minLotSize"
	KeyLotMax       = "maxLotSize"
	KeyDaysOnMarket = "daysOnMarket"
	KeyOpenHouse    = "openHouse"
	KeyPriceReduced = "priceReduced"
	KeyAmenities    = "amenities"
	KeyPage         = "page"
)

// AnyType is the form value for "all property types".
const AnyType = "all"

// plusSuffix marks an "at least" count, as in "5+".
const plusSuffix = "+"

// Encode serializes c into URL parameters, omitting every filter that is at
// its default. The result is suitable for a shareable search URL.
func Encode(c Criteria) url.Values {
	c = c.Normalize()
	v := url.Values{}
	setFloat(v, KeyPriceMin, c.PriceMin)
	setFloat(v, KeyPriceMax, c.PriceMax)
	if !c.Beds.IsZero() {
		v.Set(KeyBeds, FormatCount(c.Beds))
	}
	if !c.Baths.IsZero() {
		v.Set(KeyBaths, FormatCount(c.Baths))
	}
	if c.Type != "" {
		v.Set(KeyType, string(c.Type))
	}
	if c.Location != "" {
		v.Set(KeyLocation, c.Location)
	}
	setFloat(v, KeySqftMin, c.SqftMin)
	setFloat(v, KeySqftMax, c.SqftMax)
	setInt(v, KeyYearMin, c.YearMin)
	setInt(v, KeyYearMax, c.YearMax)
	setFloat(v, KeyLotMin, c.LotMin)
	setFloat(v, KeyLotMax, c.LotMax)
	setInt(v, KeyDaysOnMarket, c.ListedWithinDays)
	if c.OpenHouse {
		v.Set(KeyOpenHouse, "true")
	}
	if c.PriceReduced {
		v.Set(KeyPriceReduced, "true")
	}
	if len(c.Amenities) > 0 {
		v.Set(KeyAmenities, strings.Join(c.Amenities, ","))
	}
	return v
}

// Decode parses URL parameters into criteria. Missing keys take their
// default and malformed values are treated as missing; Decode never fails.
func Decode(v url.Values) Criteria {
	c := Criteria{
		PriceMin:         parseFloat(v.Get(KeyPriceMin)),
		PriceMax:         parseFloat(v.Get(KeyPriceMax)),
		Beds:             ParseCount(v.Get(KeyBeds)),
		Baths:            ParseCount(v.Get(KeyBaths)),
		Location:         v.Get(KeyLocation),
		SqftMin:          parseFloat(v.Get(KeySqftMin)),
		SqftMax:          parseFloat(v.Get(KeySqftMax)),
		YearMin:          parseInt(v.Get(KeyYearMin)),
		YearMax:          parseInt(v.Get(KeyYearMax)),
		LotMin:           parseFloat(v.Get(KeyLotMin)),
		LotMax:           parseFloat(v.Get(KeyLotMax)),
		ListedWithinDays: parseInt(v.Get(KeyDaysOnMarket)),
		OpenHouse:        v.Get(KeyOpenHouse) == "true",
		PriceReduced:     v.Get(KeyPriceReduced) == "true",
		Amenities:        strings.Split(v.Get(KeyAmenities), ","),
	}
	if t := v.Get(KeyType); t != AnyType {
		c.Type = model.PropertyType(t)
	}
	return c.Normalize()
}

// DecodePage returns the 1-based page number, defaulting to 1.
func DecodePage(v url.Values) int {
	return ClampPage(parseInt(v.Get(KeyPage)))
}

// ParseCount parses a bedroom/bathroom selection: "3" is exactly three,
// "5+" is five or more, and "0" or anything unparsable is any.
func ParseCount(s string) Count {
	s = strings.TrimSpace(s)
	atLeast := strings.HasSuffix(s, plusSuffix)
	n := parseInt(strings.TrimSuffix(s, plusSuffix))
	if n <= 0 {
		return Count{}
	}
	return Count{N: n, AtLeast: atLeast}
}

// FormatCount is the inverse of ParseCount.
func FormatCount(c Count) string {
	if c.IsZero() {
		return "0"
	}
	s := strconv.Itoa(c.N)
	if c.AtLeast {
		s += plusSuffix
	}
	return s
}

func setFloat(v url.Values, key string, f float64) {
	if f != 0 {
		v.Set(key, strconv.FormatFloat(f, 'f', -1, 64))
	}
}

func setInt(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0
	}
	return f
}

func parseInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
