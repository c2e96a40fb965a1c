package goquery

import (
	"github.com/pagelens/pagelens"
)

// WooCommerceScraper extracts a product from WooCommerce storefronts using
// the plugin's standard markup classes.
type WooCommerceScraper struct{}

// NewWooCommerceScraper creates a new WooCommerceScraper.
func NewWooCommerceScraper() *WooCommerceScraper {
	return &WooCommerceScraper{}
}

// Name returns the scraper's identifier.
func (s *WooCommerceScraper) Name() string {
	return "woocommerce"
}

// ScrapeProducts extracts the single product described by the page.
// Returns nil when neither a title nor a price is found.
func (s *WooCommerceScraper) ScrapeProducts(snap pagelens.Snapshot) []pagelens.ProductRecord {
	doc := parseSnapshot(snap)
	if doc == nil {
		return nil
	}

	name := firstText(doc, ".product_title")
	// A discounted product keeps both prices in the DOM; <ins> holds the
	// one actually charged.
	price := firstText(doc,
		".price ins .woocommerce-Price-amount",
		"p.price .woocommerce-Price-amount",
		".price .woocommerce-Price-amount",
	)
	if name == "" && price == "" {
		return nil
	}

	rec := pagelens.ProductRecord{
		Name:  name,
		Price: price,
		Description: pagelens.Clip(
			firstText(doc, ".woocommerce-product-details__short-description", "#tab-description"),
			pagelens.MaxProductDescription,
		),
		ImageURL:     firstAttr(doc, "src", ".woocommerce-product-gallery__image img"),
		Availability: firstText(doc, ".stock"),
		SKU:          firstText(doc, ".sku"),
	}
	return []pagelens.ProductRecord{rec}
}
