package mock

import "github.com/pagelens/pagelens"

var _ pagelens.ProductScraper = (*ProductScraper)(nil)

// ProductScraper is a mock implementation of pagelens.ProductScraper.
type ProductScraper struct {
	ScrapeProductsFn func(snap pagelens.Snapshot) []pagelens.ProductRecord
	NameFn           func() string
}

func (s *ProductScraper) ScrapeProducts(snap pagelens.Snapshot) []pagelens.ProductRecord {
	return s.ScrapeProductsFn(snap)
}

func (s *ProductScraper) Name() string {
	if s.NameFn == nil {
		return "mock"
	}
	return s.NameFn()
}
