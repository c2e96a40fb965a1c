package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// maxJSONLDDepth bounds recursion into nested graph/array wrappers so a
// pathological block cannot blow the stack.
const maxJSONLDDepth = 8

// jsonLDNodes parses every JSON-LD block on the page and returns the
// flattened entity nodes. Graph containers and arrays are unwrapped
// recursively; malformed blocks are skipped per block.
func jsonLDNodes(doc *goquery.Document) []map[string]any {
	var nodes []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		dec := json.NewDecoder(strings.NewReader(s.Text()))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return
		}
		collectJSONLDNodes(v, &nodes, 0)
	})
	return nodes
}

func collectJSONLDNodes(v any, out *[]map[string]any, depth int) {
	if depth > maxJSONLDDepth {
		return
	}
	switch t := v.(type) {
	case []any:
		for _, el := range t {
			collectJSONLDNodes(el, out, depth+1)
		}
	case map[string]any:
		*out = append(*out, t)
		if graph, ok := t["@graph"]; ok {
			collectJSONLDNodes(graph, out, depth+1)
		}
	}
}

// nodeHasType reports whether the node's @type is (or, for an array of
// types, includes) any of the wanted type tags.
func nodeHasType(node map[string]any, want ...string) bool {
	switch t := node["@type"].(type) {
	case string:
		for _, w := range want {
			if t == w {
				return true
			}
		}
	case []any:
		for _, el := range t {
			s, ok := el.(string)
			if !ok {
				continue
			}
			for _, w := range want {
				if s == w {
					return true
				}
			}
		}
	}
	return false
}

// jsonLDProducts returns a product record for every Product node on the
// page.
func jsonLDProducts(doc *goquery.Document) []pagelens.ProductRecord {
	var products []pagelens.ProductRecord
	for _, node := range jsonLDNodes(doc) {
		if !nodeHasType(node, "Product", "IndividualProduct") {
			continue
		}
		products = append(products, productFromJSONLD(node))
	}
	return products
}

// hasJSONLDProduct reports whether any JSON-LD block declares a Product.
func hasJSONLDProduct(doc *goquery.Document) bool {
	for _, node := range jsonLDNodes(doc) {
		if nodeHasType(node, "Product", "IndividualProduct") {
			return true
		}
	}
	return false
}

func productFromJSONLD(node map[string]any) pagelens.ProductRecord {
	offer := firstOffer(node["offers"])
	rating := asMap(node["aggregateRating"])
	return pagelens.ProductRecord{
		Name:         jsonString(node["name"]),
		Price:        offerPrice(offer),
		Currency:     jsonString(offer["priceCurrency"]),
		Description:  pagelens.Clip(stripHTML(jsonString(node["description"])), pagelens.MaxProductDescription),
		ImageURL:     imageFromJSONLD(node["image"]),
		Rating:       jsonString(rating["ratingValue"]),
		ReviewCount:  firstNonEmpty(jsonString(rating["reviewCount"]), jsonString(rating["ratingCount"])),
		Availability: pagelens.NormalizeAvailability(jsonString(offer["availability"])),
		Brand:        brandFromJSONLD(node["brand"]),
		SKU:          firstNonEmpty(jsonString(node["sku"]), jsonString(node["mpn"]), jsonString(node["productID"])),
	}
}

// firstOffer resolves the single-offer, offer-array and aggregate-offer
// shapes to one offer map. Always returns a non-nil map.
func firstOffer(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case []any:
		for _, el := range t {
			if m, ok := el.(map[string]any); ok {
				return m
			}
		}
	}
	return map[string]any{}
}

// offerPrice prefers the direct price, then the aggregate-offer low and
// high prices.
func offerPrice(offer map[string]any) string {
	return firstNonEmpty(
		jsonString(offer["price"]),
		jsonString(offer["lowPrice"]),
		jsonString(offer["highPrice"]),
	)
}

// imageFromJSONLD resolves string, array and ImageObject shapes.
func imageFromJSONLD(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, el := range t {
			if s := imageFromJSONLD(el); s != "" {
				return s
			}
		}
	case map[string]any:
		return firstNonEmpty(jsonString(t["url"]), jsonString(t["contentUrl"]))
	}
	return ""
}

// brandFromJSONLD resolves the Brand-object and bare-string shapes.
func brandFromJSONLD(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return jsonString(t["name"])
	}
	return ""
}

// jsonString renders a scalar JSON value as a string. Numbers keep their
// source representation (the decoder is configured with UseNumber).
func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	}
	return ""
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
