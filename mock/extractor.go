package mock

import (
	"context"

	"github.com/pagelens/pagelens"
)

var _ pagelens.CommerceExtractor = (*CommerceExtractor)(nil)

// CommerceExtractor is a mock implementation of pagelens.CommerceExtractor.
type CommerceExtractor struct {
	ExtractProductsFn func(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error)
}

func (e *CommerceExtractor) ExtractProducts(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
	return e.ExtractProductsFn(snap)
}

var _ pagelens.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of pagelens.ProfileExtractor.
type ProfileExtractor struct {
	ExtractProfilesFn func(ctx context.Context, snap pagelens.Snapshot) ([]pagelens.ProfileRecord, error)
}

func (e *ProfileExtractor) ExtractProfiles(ctx context.Context, snap pagelens.Snapshot) ([]pagelens.ProfileRecord, error) {
	return e.ExtractProfilesFn(ctx, snap)
}

var _ pagelens.GeneralExtractor = (*GeneralExtractor)(nil)

// GeneralExtractor is a mock implementation of pagelens.GeneralExtractor.
type GeneralExtractor struct {
	ExtractPageFn func(snap pagelens.Snapshot) (*pagelens.GeneralPageRecord, error)
}

func (e *GeneralExtractor) ExtractPage(snap pagelens.Snapshot) (*pagelens.GeneralPageRecord, error) {
	return e.ExtractPageFn(snap)
}

var _ pagelens.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of pagelens.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*pagelens.ContentExtract, error)
}

func (e *ContentExtractor) Extract(html string) (*pagelens.ContentExtract, error) {
	return e.ExtractFn(html)
}
