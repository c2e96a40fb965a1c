package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// GenericScraper extracts a single best-effort product using universal
// price/title/description heuristics. It is the last strategy in the
// commerce cascade and the registry fallback for unrecognized storefronts.
type GenericScraper struct{}

// NewGenericScraper creates a new GenericScraper.
func NewGenericScraper() *GenericScraper {
	return &GenericScraper{}
}

// Name returns the scraper's identifier.
func (s *GenericScraper) Name() string {
	return "generic"
}

var (
	// symbolPricePattern matches a currency symbol followed by digits.
	symbolPricePattern = regexp.MustCompile(`[$€£¥₹]\s?\d[\d.,]*`)

	// codePricePattern matches digits followed by an ISO currency code.
	codePricePattern = regexp.MustCompile(`\d[\d.,]*\s?(USD|EUR|GBP|JPY|INR|CAD|AUD|CHF|CNY)`)
)

var productTitleSelectors = []string{
	"#productTitle",
	`[data-testid="product-title"]`,
	`h1[class*="product"]`,
	`h1[class*="title"]`,
	`[class*="product-title"]`,
	`[class*="product-name"]`,
	`[class*="product_title"]`,
}

var productDescriptionSelectors = []string{
	"#productDescription",
	`[class*="product-description"]`,
	`[class*="product_description"]`,
	`[class*="description"]`,
}

var productImageSelectors = []string{
	"#landingImage",
	"#imgBlkFront",
	`[class*="product-image"] img`,
	`[class*="gallery"] img`,
	`[data-testid="product-image"] img`,
}

// ScrapeProducts returns one record assembled from heuristic probes:
// the first price-like element whose text matches a currency pattern, the
// most specific product-title-like element (falling back to the first
// heading, then the document title before any pipe/dash separator), a
// description and an image from gallery-like selectors.
func (s *GenericScraper) ScrapeProducts(snap pagelens.Snapshot) []pagelens.ProductRecord {
	doc := parseSnapshot(snap)
	if doc == nil {
		return nil
	}

	price, currency := sniffPrice(doc)

	name := firstText(doc, productTitleSelectors...)
	if name == "" {
		name = firstText(doc, "h1")
	}
	if name == "" {
		name = bareTitle(snapshotTitle(snap, doc))
	}

	rec := pagelens.ProductRecord{
		Name:        name,
		Price:       price,
		Currency:    currency,
		Description: pagelens.Clip(firstText(doc, productDescriptionSelectors...), pagelens.MaxProductDescription),
		ImageURL:    firstAttr(doc, "src", productImageSelectors...),
		Rating: firstText(doc,
			`[class*="rating"] [class*="value"]`,
			`[class*="star-rating"]`,
			`[data-testid="rating"]`,
			`[class*="review-rating"]`,
		),
		Availability: firstText(doc,
			"#availability",
			`[class*="availability"]`,
			`[class*="stock"]`,
			`[data-testid="availability"]`,
		),
	}
	return []pagelens.ProductRecord{rec}
}

// sniffPrice finds the first price-like element whose text matches a
// currency-symbol-plus-digits or digits-plus-currency-code pattern, and
// returns the matched price text plus the currency code when present.
func sniffPrice(doc *goquery.Document) (price, currency string) {
	doc.Find(priceSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := collapseSpace(el.Text())
		if text == "" {
			return true
		}
		if m := symbolPricePattern.FindString(text); m != "" {
			price = m
			return false
		}
		if m := codePricePattern.FindStringSubmatch(text); m != nil {
			price = m[0]
			currency = m[1]
			return false
		}
		return true
	})
	return price, currency
}

// bareTitle returns the portion of a document title before any pipe or
// spaced-dash separator.
func bareTitle(title string) string {
	for _, sep := range []string{"|", " - ", " – ", " — "} {
		if idx := strings.Index(title, sep); idx > 0 {
			title = title[:idx]
		}
	}
	return strings.TrimSpace(title)
}
