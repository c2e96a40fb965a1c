package scrape_test

import (
	"context"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/pagelens/pagelens/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 2, 14, 10, 30, 0, 0, time.UTC)

func newCoordinator(t *testing.T, opts ...func(*deps)) *scrape.Coordinator {
	t.Helper()
	d := &deps{
		classifier: &mock.Classifier{ClassifyFn: func(snap pagelens.Snapshot) pagelens.SiteCategory {
			return pagelens.CategoryGeneral
		}},
		commerce: &mock.CommerceExtractor{ExtractProductsFn: func(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
			return nil, nil
		}},
		profile: &mock.ProfileExtractor{ExtractProfilesFn: func(ctx context.Context, snap pagelens.Snapshot) ([]pagelens.ProfileRecord, error) {
			return nil, nil
		}},
		general: &mock.GeneralExtractor{ExtractPageFn: func(snap pagelens.Snapshot) (*pagelens.GeneralPageRecord, error) {
			return &pagelens.GeneralPageRecord{}, nil
		}},
	}
	for _, opt := range opts {
		opt(d)
	}
	return scrape.NewCoordinator(d.classifier, d.commerce, d.profile, d.general,
		scrape.WithNow(func() time.Time { return fixedTime }))
}

type deps struct {
	classifier *mock.Classifier
	commerce   *mock.CommerceExtractor
	profile    *mock.ProfileExtractor
	general    *mock.GeneralExtractor
}

func TestCoordinator_Extract(t *testing.T) {
	t.Parallel()

	snap := pagelens.Snapshot{URL: "https://example.com/p", Title: "Example", HTML: "<html></html>"}

	t.Run("routes ecommerce to the commerce extractor", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t, func(d *deps) {
			d.commerce.ExtractProductsFn = func(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
				return []pagelens.ProductRecord{{Name: "Widget", Price: "9.99"}}, nil
			}
		})
		env := c.Extract(context.Background(), snap, pagelens.CategoryEcommerce)
		assert.Equal(t, pagelens.CategoryEcommerce, env.Category)
		require.Len(t, env.Products, 1)
		assert.Equal(t, "Widget", env.Products[0].Name)
		assert.Nil(t, env.Page)
		assert.Empty(t, env.Error)
		assert.Equal(t, fixedTime, env.ExtractedAt)
		assert.Equal(t, "https://example.com/p", env.SourceURL)
		assert.Equal(t, "Example", env.PageTitle)
	})

	t.Run("classifies when no category is supplied", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t, func(d *deps) {
			d.classifier.ClassifyFn = func(snap pagelens.Snapshot) pagelens.SiteCategory {
				return pagelens.CategoryProfile
			}
			d.profile.ExtractProfilesFn = func(ctx context.Context, snap pagelens.Snapshot) ([]pagelens.ProfileRecord, error) {
				return []pagelens.ProfileRecord{{Name: "Jane Doe"}}, nil
			}
		})
		env := c.Extract(context.Background(), snap, "")
		assert.Equal(t, pagelens.CategoryProfile, env.Category)
		require.Len(t, env.Profiles, 1)
	})

	t.Run("extractor errors land in the envelope", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t, func(d *deps) {
			d.general.ExtractPageFn = func(snap pagelens.Snapshot) (*pagelens.GeneralPageRecord, error) {
				return nil, pagelens.Errorf(pagelens.EINVALID, "malformed document")
			}
		})
		env := c.Extract(context.Background(), snap, pagelens.CategoryGeneral)
		assert.Equal(t, "malformed document", env.Error)
		assert.Nil(t, env.Page)
		assert.Nil(t, env.Products)
		assert.Nil(t, env.Profiles)
	})

	t.Run("extractor panics land in the envelope", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t, func(d *deps) {
			d.commerce.ExtractProductsFn = func(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
				panic("selector blew up")
			}
		})
		env := c.Extract(context.Background(), snap, pagelens.CategoryEcommerce)
		assert.Contains(t, env.Error, "selector blew up")
		assert.Nil(t, env.Products)
	})
}

func TestCoordinator_Handle(t *testing.T) {
	t.Parallel()

	t.Run("detect site type", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t, func(d *deps) {
			d.classifier.ClassifyFn = func(snap pagelens.Snapshot) pagelens.SiteCategory {
				return pagelens.CategoryEcommerce
			}
		})
		resp := c.Handle(context.Background(), scrape.Request{
			Action: scrape.ActionDetectSiteType,
			URL:    "https://shop.example.com",
			HTML:   "<html></html>",
		})
		assert.Equal(t, pagelens.CategoryEcommerce, resp.Category)
		assert.Nil(t, resp.Envelope)
	})

	t.Run("scrape request", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t)
		resp := c.Handle(context.Background(), scrape.Request{
			Action:   scrape.ActionScrapeRequest,
			URL:      "https://example.com",
			HTML:     "<html></html>",
			Category: pagelens.CategoryGeneral,
		})
		require.NotNil(t, resp.Envelope)
		assert.Equal(t, pagelens.CategoryGeneral, resp.Envelope.Category)
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()
		c := newCoordinator(t)
		resp := c.Handle(context.Background(), scrape.Request{Action: "NOPE"})
		assert.Contains(t, resp.Error, "NOPE")
	})
}
