package pagelens

// SiteCategory identifies the kind of page a snapshot was taken from.
type SiteCategory string

// The closed set of site categories.
const (
	CategoryEcommerce SiteCategory = "ecommerce"
	CategoryProfile   SiteCategory = "professional_profile"
	CategoryGeneral   SiteCategory = "general"
)

// Valid reports whether c is one of the known categories.
func (c SiteCategory) Valid() bool {
	switch c {
	case CategoryEcommerce, CategoryProfile, CategoryGeneral:
		return true
	}
	return false
}

// Classifier decides what kind of page a snapshot is.
type Classifier interface {
	// Classify returns the category for the snapshot. It is deterministic
	// for a fixed snapshot and never fails: any probe failure is treated
	// as "signal absent" and classification continues down the battery,
	// ending at CategoryGeneral.
	Classify(snap Snapshot) SiteCategory
}

// Platform identifies a storefront engine or marketplace.
type Platform string

// Recognized commerce platforms.
const (
	PlatformUnknown     Platform = ""
	PlatformAmazon      Platform = "amazon"
	PlatformShopify     Platform = "shopify"
	PlatformWooCommerce Platform = "woocommerce"
)

// PlatformDetector identifies commerce platforms from page markup.
type PlatformDetector interface {
	// DetectPlatform analyzes a snapshot and returns the identified
	// platform. Returns PlatformUnknown if none is recognized.
	DetectPlatform(snap Snapshot) Platform
}

// ProductScraper extracts product records using selectors tuned for a
// specific platform (or generic heuristics for the fallback scraper).
type ProductScraper interface {
	// ScrapeProducts returns best-effort product records from the
	// snapshot. Missing signals yield empty fields, never errors.
	ScrapeProducts(snap Snapshot) []ProductRecord

	// Name returns the scraper's identifier (e.g., "shopify", "generic").
	Name() string
}

// ProductScraperRegistry manages platform-specific product scrapers.
type ProductScraperRegistry interface {
	// Get returns the scraper for a specific platform.
	// Returns nil if no scraper is registered for the platform.
	Get(platform Platform) ProductScraper

	// GetForSnapshot detects the platform and returns the appropriate
	// scraper, falling back to a generic scraper when the platform is
	// unknown or unregistered.
	GetForSnapshot(snap Snapshot) ProductScraper

	// Register adds a scraper for a platform.
	Register(platform Platform, scraper ProductScraper)

	// List returns all registered platforms.
	List() []Platform
}
