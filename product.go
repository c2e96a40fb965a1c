package pagelens

import "strings"

// MaxProductDescription is the hard cap, in runes, on a product description.
const MaxProductDescription = 500

// ProductRecord is a normalized product extracted from a commerce page.
// Every field is a best-effort string; absent signals are empty strings,
// never missing fields, so downstream tabular export stays uniform.
type ProductRecord struct {
	Name         string `json:"name"`
	Price        string `json:"price"`
	Currency     string `json:"currency"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	Rating       string `json:"rating"`
	ReviewCount  string `json:"reviewCount"`
	Availability string `json:"availability"`
	Brand        string `json:"brand"`
	SKU          string `json:"sku"`
}

// availabilityRules map schema.org availability markers to display strings.
// Matched case-sensitively as substrings, first match wins.
var availabilityRules = []struct {
	marker string
	out    string
}{
	{"InStock", "In Stock"},
	{"OutOfStock", "Out of Stock"},
	{"PreOrder", "Pre-Order"},
	{"LimitedAvailability", "Limited"},
	{"Discontinued", "Discontinued"},
}

// NormalizeAvailability maps a raw availability value (typically a
// schema.org URL like "https://schema.org/InStock") to a display string.
// Unrecognized values are returned with any schema namespace prefix
// stripped but otherwise verbatim.
func NormalizeAvailability(raw string) string {
	if raw == "" {
		return ""
	}
	for _, r := range availabilityRules {
		if strings.Contains(raw, r.marker) {
			return r.out
		}
	}
	s := strings.TrimPrefix(raw, "https://schema.org/")
	s = strings.TrimPrefix(s, "http://schema.org/")
	return s
}

// Clip returns s truncated to at most max runes.
func Clip(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
