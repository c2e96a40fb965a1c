package goquery

import "github.com/pagelens/pagelens"

var _ pagelens.PlatformDetector = (*PlatformSniffer)(nil)

// PlatformSniffer identifies commerce platforms from hostname and markup
// fingerprints (storefront-engine markers in page markup or link tags).
type PlatformSniffer struct{}

// NewPlatformSniffer creates a new PlatformSniffer.
func NewPlatformSniffer() *PlatformSniffer {
	return &PlatformSniffer{}
}

// DetectPlatform analyzes a snapshot and returns the identified platform.
// Returns PlatformUnknown if none is recognized.
func (s *PlatformSniffer) DetectPlatform(snap pagelens.Snapshot) pagelens.Platform {
	doc := parseSnapshot(snap)
	if doc == nil {
		return pagelens.PlatformUnknown
	}
	return fingerprintPlatform(doc, snap)
}

var _ pagelens.ProductScraperRegistry = (*Registry)(nil)

// Registry manages platform-specific product scrapers and auto-detects
// platforms from snapshots. It uses a PlatformDetector to identify the
// storefront and returns the appropriate scraper, falling back to a
// generic scraper when the platform is unknown or no specific scraper is
// registered.
type Registry struct {
	detector pagelens.PlatformDetector
	fallback pagelens.ProductScraper
	scrapers map[pagelens.Platform]pagelens.ProductScraper
}

// NewRegistry creates a new Registry with the given detector and fallback
// scraper.
func NewRegistry(detector pagelens.PlatformDetector, fallback pagelens.ProductScraper) *Registry {
	return &Registry{
		detector: detector,
		fallback: fallback,
		scrapers: make(map[pagelens.Platform]pagelens.ProductScraper),
	}
}

// NewDefaultRegistry creates a Registry with the built-in sniffer, the
// generic fallback scraper and every platform scraper registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewPlatformSniffer(), NewGenericScraper())
	r.Register(pagelens.PlatformAmazon, NewAmazonScraper())
	r.Register(pagelens.PlatformShopify, NewShopifyScraper())
	r.Register(pagelens.PlatformWooCommerce, NewWooCommerceScraper())
	return r
}

// Get returns the scraper for a specific platform.
// Returns nil if no scraper is registered for the platform.
func (r *Registry) Get(platform pagelens.Platform) pagelens.ProductScraper {
	return r.scrapers[platform]
}

// GetForSnapshot detects the platform and returns the appropriate scraper.
// Falls back to the fallback scraper if the platform is unknown or no
// scraper is registered for the detected platform.
func (r *Registry) GetForSnapshot(snap pagelens.Snapshot) pagelens.ProductScraper {
	platform := r.detector.DetectPlatform(snap)
	if scraper, ok := r.scrapers[platform]; ok {
		return scraper
	}
	return r.fallback
}

// Register adds a scraper for a platform.
// If a scraper is already registered for the platform, it is replaced.
func (r *Registry) Register(platform pagelens.Platform, scraper pagelens.ProductScraper) {
	r.scrapers[platform] = scraper
}

// List returns all registered platforms.
func (r *Registry) List() []pagelens.Platform {
	platforms := make([]pagelens.Platform, 0, len(r.scrapers))
	for p := range r.scrapers {
		platforms = append(platforms, p)
	}
	return platforms
}
