package search

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/homestead/backend/internal/model"
)

func TestEncode_DefaultsOmitted(t *testing.T) {
	v := Encode(Criteria{})
	if len(v) != 0 {
		t.Errorf("expected no parameters for default criteria, got %v", v)
	}
}

func TestEncode_AllFields(t *testing.T) {
	c := Criteria{
		PriceMin:         250000,
		PriceMax:         1250000.5,
		Beds:             Count{N: 5, AtLeast: true},
		Baths:            Count{N: 2},
		Type:             model.PropertyCondo,
		Location:         "Malibu",
		SqftMin:          900,
		SqftMax:          3000,
		YearMin:          1990,
		YearMax:          2020,
		LotMin:           1000,
		LotMax:           8000,
		ListedWithinDays: 7,
		OpenHouse:        true,
		PriceReduced:     true,
		Amenities:        []string{"pool", "garage"},
	}
	want := url.Values{
		"minPrice":     {"250000"},
		"maxPrice":     {"1250000.5"},
		"beds":         {"5+"},
		"baths":        {"2"},
		"type":         {"condo"},
		"city":         {"Malibu"},
		"minSqft":      {"900"},
		"maxSqft":      {"3000"},
		"minYear":      {"1990"},
		"maxYear":      {"2020"},
		"minLotSize":   {"1000"},
		"maxLotSize":   {"8000"},
		"daysOnMarket": {"7"},
		"openHouse":    {"true"},
		"priceReduced": {"true"},
		"amenities":    {"pool,garage"},
	}
	got := Encode(c)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Encode mismatch\n got: %v\nwant: %v", got, want)
	}
}

func TestDecode_MissingKeysAreDefaults(t *testing.T) {
	got := Decode(url.Values{})
	if !reflect.DeepEqual(got, Criteria{}) {
		t.Errorf("expected zero criteria, got %+v", got)
	}
	if got.IsActive() {
		t.Error("expected decoded empty parameters to be inactive")
	}
}

func TestDecode_MalformedNumbersAreAbsent(t *testing.T) {
	v := url.Values{
		"minPrice":     {"abc"},
		"maxPrice":     {"-100"},
		"beds":         {"lots"},
		"baths":        {"+"},
		"minYear":      {"19.5"},
		"maxSqft":      {"NaN"},
		"minLotSize":   {"Inf"},
		"daysOnMarket": {"-3"},
		"type":         {"castle"},
	}
	got := Decode(v)
	if !reflect.DeepEqual(got, Criteria{}) {
		t.Errorf("expected malformed values to decode as defaults, got %+v", got)
	}
}

func TestDecode_TypeAll(t *testing.T) {
	got := Decode(url.Values{"type": {"all"}})
	if got.Type != "" {
		t.Errorf("expected any type, got %q", got.Type)
	}
}

func TestDecode_AmenitiesDropEmptyTokens(t *testing.T) {
	got := Decode(url.Values{"amenities": {",pool,,garage,pool,"}})
	want := []string{"pool", "garage"}
	if !reflect.DeepEqual(got.Amenities, want) {
		t.Errorf("expected %v, got %v", want, got.Amenities)
	}
}

func TestDecode_PlusSentinel(t *testing.T) {
	got := Decode(url.Values{"beds": {"5+"}, "baths": {"3"}})
	if got.Beds != (Count{N: 5, AtLeast: true}) {
		t.Errorf("expected beds {5 true}, got %+v", got.Beds)
	}
	if got.Baths != (Count{N: 3}) {
		t.Errorf("expected baths {3 false}, got %+v", got.Baths)
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		in   string
		want Count
	}{
		{"", Count{}},
		{"0", Count{}},
		{"0+", Count{}},
		{"1", Count{N: 1}},
		{"3", Count{N: 3}},
		{"5+", Count{N: 5, AtLeast: true}},
		{" 2+ ", Count{N: 2, AtLeast: true}},
		{"x+", Count{}},
		{"-2", Count{}},
	}
	for _, tt := range tests {
		if got := ParseCount(tt.in); got != tt.want {
			t.Errorf("ParseCount(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	if got := FormatCount(Count{N: 5, AtLeast: true}); got != "5+" {
		t.Errorf("expected 5+, got %q", got)
	}
	if got := FormatCount(Count{N: 3}); got != "3" {
		t.Errorf("expected 3, got %q", got)
	}
	if got := FormatCount(Count{AtLeast: true}); got != "0" {
		t.Errorf("expected 0, got %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	states := []Criteria{
		{},
		{PriceMin: 100000},
		{PriceMax: 999999.99, Beds: Count{N: 5, AtLeast: true}},
		{Beds: Count{N: 0, AtLeast: true}, Baths: Count{N: 2}},
		{Type: model.PropertyLand, Location: "  90210 "},
		{Type: "boat"},
		{SqftMin: 1200, SqftMax: 800},
		{YearMin: -5, YearMax: 2001},
		{LotMin: 0.5, LotMax: 2.25},
		{ListedWithinDays: 30, OpenHouse: true},
		{PriceReduced: true, Amenities: []string{"garage", "pool", "garage", ""}},
		{Amenities: []string{"pool,gym"}},
		{PriceMin: -1, SqftMax: -10, ListedWithinDays: -1},
	}
	for i, s := range states {
		got := Decode(Encode(s))
		want := s.Normalize()
		if !reflect.DeepEqual(got, want) {
			t.Errorf("state %d: decode(encode(s)) = %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodePage(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1},
		{"0", 1},
		{"-4", 1},
		{"abc", 1},
		{"3", 3},
		{"10001", MaxPage},
		{"9223372036854775807", MaxPage},
	}
	for _, tt := range tests {
		if got := DecodePage(url.Values{"page": {tt.in}}); got != tt.want {
			t.Errorf("DecodePage(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
