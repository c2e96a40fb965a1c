package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Ensure CommerceExtractor implements pagelens.CommerceExtractor at
// compile time.
var _ pagelens.CommerceExtractor = (*CommerceExtractor)(nil)

// CommerceExtractor runs the ordered commerce strategy cascade: JSON-LD
// structured data, then microdata, then a platform-specific scraper with
// a generic heuristic fallback. The cascade stops at the first strategy
// producing at least one record.
type CommerceExtractor struct {
	scrapers    pagelens.ProductScraperRegistry
	generic     pagelens.ProductScraper
	noiseFilter bool
}

// CommerceOption configures a CommerceExtractor.
type CommerceOption func(*CommerceExtractor)

// WithTitleNoiseFilter controls the post-extraction filter that discards
// entries whose name equals the bare page title and whose price is empty.
// Enabled by default; the filter never empties the result set - when every
// entry would be discarded the unfiltered set is kept.
func WithTitleNoiseFilter(enabled bool) CommerceOption {
	return func(e *CommerceExtractor) {
		e.noiseFilter = enabled
	}
}

// NewCommerceExtractor creates a CommerceExtractor using the given scraper
// registry for the platform strategy. A nil registry disables platform
// scraping; the generic heuristic fallback always runs last.
func NewCommerceExtractor(scrapers pagelens.ProductScraperRegistry, opts ...CommerceOption) *CommerceExtractor {
	e := &CommerceExtractor{
		scrapers:    scrapers,
		generic:     NewGenericScraper(),
		noiseFilter: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractProducts returns the products found by the first strategy that
// yields at least one record. Malformed structured-data blocks are skipped
// per block, never fatal to the extraction.
func (e *CommerceExtractor) ExtractProducts(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
	doc := parseSnapshot(snap)
	if doc == nil {
		return []pagelens.ProductRecord{}, nil
	}

	products := jsonLDProducts(doc)

	if len(products) == 0 {
		products = microdataProducts(doc)
	}

	if len(products) == 0 {
		scraper := e.generic
		if e.scrapers != nil {
			scraper = e.scrapers.GetForSnapshot(snap)
		}
		products = scraper.ScrapeProducts(snap)

		// A platform scraper that recognizes the storefront but finds
		// nothing still falls through to the generic heuristics.
		if len(products) == 0 && scraper.Name() != e.generic.Name() {
			products = e.generic.ScrapeProducts(snap)
		}
	}

	if e.noiseFilter {
		products = filterTitleNoise(products, snapshotTitle(snap, doc))
	}
	if products == nil {
		products = []pagelens.ProductRecord{}
	}
	return products, nil
}

// filterTitleNoise discards entries whose name is the bare page title with
// no price, unless that would empty the result set.
func filterTitleNoise(products []pagelens.ProductRecord, pageTitle string) []pagelens.ProductRecord {
	if pageTitle == "" {
		return products
	}
	kept := make([]pagelens.ProductRecord, 0, len(products))
	for _, p := range products {
		if p.Name == pageTitle && p.Price == "" {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return products
	}
	return kept
}

// microdataProducts queries microdata-tagged product elements and extracts
// each declared item property, preferring a content attribute over text.
func microdataProducts(doc *goquery.Document) []pagelens.ProductRecord {
	var products []pagelens.ProductRecord
	doc.Find(microdataProductSelector).Each(func(_ int, el *goquery.Selection) {
		rec := pagelens.ProductRecord{
			Name:         itemProp(el, "name"),
			Price:        itemProp(el, "price"),
			Currency:     itemProp(el, "priceCurrency"),
			Description:  pagelens.Clip(itemProp(el, "description"), pagelens.MaxProductDescription),
			ImageURL:     itemPropImage(el),
			Rating:       itemProp(el, "ratingValue"),
			ReviewCount:  itemProp(el, "reviewCount"),
			Availability: pagelens.NormalizeAvailability(itemPropRef(el, "availability")),
			Brand:        itemProp(el, "brand"),
			SKU:          itemProp(el, "sku"),
		}
		products = append(products, rec)
	})
	return products
}

// itemProp returns the named item property, preferring the content
// attribute over the element's text.
func itemProp(el *goquery.Selection, prop string) string {
	node := el.Find(`[itemprop="` + prop + `"]`).First()
	if node.Length() == 0 {
		return ""
	}
	if content := strings.TrimSpace(node.AttrOr("content", "")); content != "" {
		return content
	}
	return collapseSpace(node.Text())
}

// itemPropRef is like itemProp but also accepts an href value, the shape
// schema.org uses for enumeration references such as availability links.
func itemPropRef(el *goquery.Selection, prop string) string {
	node := el.Find(`[itemprop="` + prop + `"]`).First()
	if node.Length() == 0 {
		return ""
	}
	if content := strings.TrimSpace(node.AttrOr("content", "")); content != "" {
		return content
	}
	if href := strings.TrimSpace(node.AttrOr("href", "")); href != "" {
		return href
	}
	return collapseSpace(node.Text())
}

func itemPropImage(el *goquery.Selection) string {
	node := el.Find(`[itemprop="image"]`).First()
	if node.Length() == 0 {
		return ""
	}
	for _, attr := range []string{"src", "content", "href"} {
		if v := strings.TrimSpace(node.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}
