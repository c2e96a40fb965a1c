package goquery

import (
	"github.com/pagelens/pagelens"
)

// AmazonScraper extracts a product from marketplace product pages using
// the marketplace's stable element IDs.
type AmazonScraper struct{}

// NewAmazonScraper creates a new AmazonScraper.
func NewAmazonScraper() *AmazonScraper {
	return &AmazonScraper{}
}

// Name returns the scraper's identifier.
func (s *AmazonScraper) Name() string {
	return "amazon"
}

// ScrapeProducts extracts the single product described by the page.
// Returns nil when neither a title nor a price is found, letting the
// cascade fall through to the generic heuristics.
func (s *AmazonScraper) ScrapeProducts(snap pagelens.Snapshot) []pagelens.ProductRecord {
	doc := parseSnapshot(snap)
	if doc == nil {
		return nil
	}

	name := firstText(doc, "#productTitle")
	price := firstText(doc,
		"#priceblock_ourprice",
		"#priceblock_dealprice",
		"#corePrice_feature_div .a-offscreen",
		".a-price .a-offscreen",
	)
	if name == "" && price == "" {
		return nil
	}

	rec := pagelens.ProductRecord{
		Name:  name,
		Price: price,
		Description: pagelens.Clip(
			firstText(doc, "#productDescription", "#feature-bullets"),
			pagelens.MaxProductDescription,
		),
		ImageURL:     firstAttr(doc, "src", "#landingImage", "#imgBlkFront"),
		Rating:       firstText(doc, "#acrPopover .a-icon-alt", ".a-icon-star .a-icon-alt"),
		ReviewCount:  firstText(doc, "#acrCustomerReviewText"),
		Availability: firstText(doc, "#availability"),
		Brand:        firstText(doc, "#bylineInfo"),
		SKU:          firstAttr(doc, "value", "input#ASIN"),
	}
	return []pagelens.ProductRecord{rec}
}
