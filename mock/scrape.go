package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.ScrapeService = (*ScrapeService)(nil)

// ScrapeService is a mock implementation of pagelens.ScrapeService.
type ScrapeService struct {
	CreateScrapeFn   func(ctx context.Context, scrape *pagelens.Scrape) error
	FindScrapeByIDFn func(ctx context.Context, id string) (*pagelens.Scrape, error)
	FindScrapesFn    func(ctx context.Context, filter pagelens.ScrapeFilter) ([]*pagelens.Scrape, error)
	DeleteScrapeFn   func(ctx context.Context, id string) error
}

func (s *ScrapeService) CreateScrape(ctx context.Context, scrape *pagelens.Scrape) error {
	return s.CreateScrapeFn(ctx, scrape)
}

func (s *ScrapeService) FindScrapeByID(ctx context.Context, id string) (*pagelens.Scrape, error) {
	return s.FindScrapeByIDFn(ctx, id)
}

func (s *ScrapeService) FindScrapes(ctx context.Context, filter pagelens.ScrapeFilter) ([]*pagelens.Scrape, error) {
	return s.FindScrapesFn(ctx, filter)
}

func (s *ScrapeService) DeleteScrape(ctx context.Context, id string) error {
	return s.DeleteScrapeFn(ctx, id)
}
