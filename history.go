package pagelens

import (
	"context"
	"time"
)

// Scrape is a persisted extraction result.
type Scrape struct {
	ID          string       `json:"id"`
	Category    SiteCategory `json:"category"`
	SourceURL   string       `json:"sourceUrl"`
	PageTitle   string       `json:"pageTitle"`
	Envelope    Envelope     `json:"envelope"`
	PayloadHash string       `json:"payloadHash"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Validate returns an error if the scrape contains invalid fields.
func (s *Scrape) Validate() error {
	if s.SourceURL == "" {
		return Errorf(EINVALID, "scrape source URL required")
	}
	if !s.Category.Valid() {
		return Errorf(EINVALID, "scrape category %q invalid", s.Category)
	}
	return nil
}

// ScrapeSortOrder represents the sort order for scrape queries.
type ScrapeSortOrder string

// Sort orders for ScrapeFilter.
const (
	ScrapesByCreatedAt ScrapeSortOrder = "created_at"
	ScrapesBySourceURL ScrapeSortOrder = "source_url"
)

// ScrapeFilter represents a filter for FindScrapes.
type ScrapeFilter struct {
	ID        *string       `json:"id"`
	Category  *SiteCategory `json:"category"`
	SourceURL *string       `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy ScrapeSortOrder `json:"sortBy"`
}

// ScrapeService stores and retrieves extraction results. It is a record of
// past outputs only; nothing in the extraction pipeline reads from it.
type ScrapeService interface {
	// CreateScrape persists a new scrape.
	CreateScrape(ctx context.Context, scrape *Scrape) error

	// FindScrapeByID retrieves a scrape by ID.
	// Returns ENOTFOUND if the scrape does not exist.
	FindScrapeByID(ctx context.Context, id string) (*Scrape, error)

	// FindScrapes retrieves scrapes matching the filter.
	FindScrapes(ctx context.Context, filter ScrapeFilter) ([]*Scrape, error)

	// DeleteScrape permanently removes a scrape.
	// Returns ENOTFOUND if the scrape does not exist.
	DeleteScrape(ctx context.Context, id string) error
}
