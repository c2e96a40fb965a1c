package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// Classifier decides what kind of page a snapshot is from an ordered
// battery of signals, layered from highest precision (known hostnames,
// explicit structured data) down to regex-based currency sniffing.
// Well-instrumented sites short-circuit early; malformed or adversarial
// pages fall through to the general category rather than misclassifying.
type Classifier struct{}

// Ensure Classifier implements pagelens.Classifier at compile time.
var _ pagelens.Classifier = (*Classifier)(nil)

// NewClassifier creates a new Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// professionalHosts are known professional-network domains, matched as the
// host itself or any subdomain of it.
var professionalHosts = []string{
	"linkedin.com",
}

// commerceHosts are known commerce domains, matched as hostname substrings.
var commerceHosts = []string{
	"amazon", "ebay", "shopify", "etsy", "walmart", "aliexpress",
	"bestbuy", "target", "wayfair", "newegg", "homedepot",
	"costco", "macys", "nordstrom", "zappos", "overstock",
	"wish.com", "shein", "flipkart", "myntra", "lazada",
	"asos", "zara", "hm.com", "uniqlo", "nike", "adidas",
}

const (
	microdataProductSelector = `[itemtype*="schema.org/Product"], [itemtype*="schema.org/product"]`

	priceSelector = `[class*="price"], [id*="price"], [data-price], [itemprop="price"]`

	cartSelector = `[class*="add-to-cart"], [class*="add_to_cart"], [class*="addToCart"], [class*="add-to-bag"], ` +
		`[id*="add-to-cart"], [id*="addToCart"], button[name="add"], ` +
		`[data-action*="cart"], [data-action*="add"], [class*="buy-now"], [class*="buyNow"]`
)

// currencyTextPattern matches a currency symbol followed by a digit.
var currencyTextPattern = regexp.MustCompile(`[$€£¥₹]\s?\d`)

// currencySniffLimit is how much leading body text the currency pattern
// is applied to.
const currencySniffLimit = 5000

// Classify returns the category for the snapshot. First match wins; the
// order encodes confidence ranking.
func (c *Classifier) Classify(snap pagelens.Snapshot) pagelens.SiteCategory {
	host := hostname(snap.URL)

	for _, h := range professionalHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return pagelens.CategoryProfile
		}
	}

	for _, marker := range commerceHosts {
		if host != "" && strings.Contains(host, marker) {
			return pagelens.CategoryEcommerce
		}
	}

	doc := parseSnapshot(snap)
	if doc == nil {
		return pagelens.CategoryGeneral
	}

	// Explicit structured data - most reliable when present.
	if hasJSONLDProduct(doc) {
		return pagelens.CategoryEcommerce
	}
	if hasSelector(doc, microdataProductSelector) {
		return pagelens.CategoryEcommerce
	}
	if ogType := strings.ToLower(metaProperty(doc, "og:type")); strings.Contains(ogType, "product") {
		return pagelens.CategoryEcommerce
	}

	// Heuristic DOM signal combinations.
	hasPrice := hasSelector(doc, priceSelector)
	hasCart := hasSelector(doc, cartSelector)
	if hasPrice && hasCart {
		return pagelens.CategoryEcommerce
	}
	if hasPrice {
		hasCurrency := currencyTextPattern.MatchString(pagelens.Clip(visibleText(doc), currencySniffLimit))
		if hasCurrency && (hasCart || hasSelector(doc, `[class*="product"]`)) {
			return pagelens.CategoryEcommerce
		}
	}

	// Storefront-engine fingerprints.
	if fingerprintPlatform(doc, snap) != pagelens.PlatformUnknown {
		return pagelens.CategoryEcommerce
	}

	return pagelens.CategoryGeneral
}

// fingerprintPlatform recognizes storefront engines and marketplaces from
// hostname and markup markers. Shared by the classifier and the product
// scraper registry.
func fingerprintPlatform(doc *goquery.Document, snap pagelens.Snapshot) pagelens.Platform {
	if host := hostname(snap.URL); strings.Contains(host, "amazon.") {
		return pagelens.PlatformAmazon
	}
	if isShopify(doc, snap.HTML) {
		return pagelens.PlatformShopify
	}
	if isWooCommerce(doc) {
		return pagelens.PlatformWooCommerce
	}
	return pagelens.PlatformUnknown
}

func isShopify(doc *goquery.Document, rawHTML string) bool {
	if strings.Contains(rawHTML, "Shopify.") || strings.Contains(rawHTML, "cdn.shopify.com") {
		return true
	}
	return hasSelector(doc, `meta[name="shopify-checkout-api-token"], link[href*="cdn.shopify"]`)
}

func isWooCommerce(doc *goquery.Document) bool {
	if hasSelector(doc, `body.woocommerce, .woocommerce-page`) {
		return true
	}
	return strings.Contains(metaName(doc, "generator"), "WooCommerce")
}
