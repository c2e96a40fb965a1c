package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of pagelens.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, req pagelens.EnrichmentRequest) (*pagelens.EnrichmentResult, error)
	NameFn   func() string
}

func (e *Enricher) Enrich(ctx context.Context, req pagelens.EnrichmentRequest) (*pagelens.EnrichmentResult, error) {
	return e.EnrichFn(ctx, req)
}

func (e *Enricher) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}
