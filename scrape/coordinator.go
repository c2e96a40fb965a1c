// Package scrape coordinates classification and extraction into result
// envelopes. The Coordinator is the failure boundary of the pipeline:
// whatever happens inside an extractor, callers always receive an
// Envelope, with the failure recorded in its Error field.
package scrape

import (
	"context"
	"time"

	"github.com/pagelens/pagelens"
)

// Coordinator routes snapshots through the classifier and the
// category-appropriate extractor.
type Coordinator struct {
	classifier pagelens.Classifier
	commerce   pagelens.CommerceExtractor
	profile    pagelens.ProfileExtractor
	general    pagelens.GeneralExtractor
	now        func() time.Time
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithNow overrides the clock used to stamp envelopes. Used by tests.
func WithNow(now func() time.Time) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// NewCoordinator creates a Coordinator from a classifier and the three
// category extractors.
func NewCoordinator(
	classifier pagelens.Classifier,
	commerce pagelens.CommerceExtractor,
	profile pagelens.ProfileExtractor,
	general pagelens.GeneralExtractor,
	opts ...Option,
) *Coordinator {
	c := &Coordinator{
		classifier: classifier,
		commerce:   commerce,
		profile:    profile,
		general:    general,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DetectSiteType classifies a snapshot without extracting anything.
func (c *Coordinator) DetectSiteType(snap pagelens.Snapshot) pagelens.SiteCategory {
	return c.classifier.Classify(snap)
}

// Extract runs the extractor for category against the snapshot and wraps
// the result in an envelope. An invalid or empty category triggers a
// fresh classification, so callers may pass a previously detected
// category or leave it blank. Extraction failures, including panics
// inside an extractor, never escape: the envelope carries the error
// message and no payload.
func (c *Coordinator) Extract(ctx context.Context, snap pagelens.Snapshot, category pagelens.SiteCategory) *pagelens.Envelope {
	if !category.Valid() {
		category = c.classifier.Classify(snap)
	}
	env := &pagelens.Envelope{
		Category:    category,
		SourceURL:   snap.URL,
		PageTitle:   snap.Title,
		ExtractedAt: c.now().UTC(),
	}
	if err := c.runExtractor(ctx, snap, env); err != nil {
		env.Products, env.Profiles, env.Page = nil, nil, nil
		env.Error = pagelens.ErrorMessage(err)
	}
	return env
}

// runExtractor dispatches on the envelope's category and absorbs panics
// into errors.
func (c *Coordinator) runExtractor(ctx context.Context, snap pagelens.Snapshot, env *pagelens.Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = pagelens.Errorf(pagelens.EINTERNAL, "extractor failure: %v", r)
		}
	}()

	switch env.Category {
	case pagelens.CategoryEcommerce:
		env.Products, err = c.commerce.ExtractProducts(snap)
	case pagelens.CategoryProfile:
		env.Profiles, err = c.profile.ExtractProfiles(ctx, snap)
	case pagelens.CategoryGeneral:
		env.Page, err = c.general.ExtractPage(snap)
	default:
		err = pagelens.Errorf(pagelens.EINVALID, "unknown site category %q", env.Category)
	}
	return err
}
