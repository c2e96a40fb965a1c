package goquery

import (
	"github.com/pagelens/pagelens"
)

// ShopifyScraper extracts a product from Shopify storefronts using the
// theme classes shared by the platform's standard themes.
type ShopifyScraper struct{}

// NewShopifyScraper creates a new ShopifyScraper.
func NewShopifyScraper() *ShopifyScraper {
	return &ShopifyScraper{}
}

// Name returns the scraper's identifier.
func (s *ShopifyScraper) Name() string {
	return "shopify"
}

// ScrapeProducts extracts the single product described by the page.
// Returns nil when neither a title nor a price is found.
func (s *ShopifyScraper) ScrapeProducts(snap pagelens.Snapshot) []pagelens.ProductRecord {
	doc := parseSnapshot(snap)
	if doc == nil {
		return nil
	}

	name := firstText(doc,
		"h1.product__title",
		".product__title",
		".product-single__title",
		`h1[itemprop="name"]`,
	)
	price := firstText(doc,
		".price__regular .price-item--regular",
		".price-item--sale",
		".product__price",
		"span.money",
	)
	if name == "" && price == "" {
		return nil
	}

	rec := pagelens.ProductRecord{
		Name:  name,
		Price: price,
		Description: pagelens.Clip(
			firstText(doc, ".product__description", ".product-single__description"),
			pagelens.MaxProductDescription,
		),
		ImageURL: firstAttr(doc, "src",
			".product__media img",
			".product-single__photo img",
			".product__photo img",
		),
		Availability: firstText(doc, ".product__inventory"),
		SKU:          firstText(doc, ".variant-sku", `[data-sku]`),
	}
	return []pagelens.ProductRecord{rec}
}
