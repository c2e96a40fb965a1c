package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/pagelens/pagelens/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoordinator() *scrape.Coordinator {
	return scrape.NewCoordinator(
		&mock.Classifier{
			ClassifyFn: func(snap pagelens.Snapshot) pagelens.SiteCategory {
				return pagelens.CategoryEcommerce
			},
		},
		&mock.CommerceExtractor{
			ExtractProductsFn: func(snap pagelens.Snapshot) ([]pagelens.ProductRecord, error) {
				return []pagelens.ProductRecord{{Name: "Ceramic Mug", Price: "19.99"}}, nil
			},
		},
		&mock.ProfileExtractor{},
		&mock.GeneralExtractor{},
	)
}

func TestDetectCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints detected category", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Coordinator = newTestCoordinator()
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				assert.Equal(t, "https://shop.test/mug", url)
				return "<html><title>Mug</title></html>", nil
			},
		}

		cmd := &main.DetectCmd{URL: "https://shop.test/mug"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "ecommerce\n", stdout.String())
	})

	t.Run("fetch failure", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "fetch failed: connection refused")
			},
		}

		cmd := &main.DetectCmd{URL: "https://down.test"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "connection refused")
		assert.Empty(t, stdout.String())
	})
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints envelope as JSON", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Coordinator = newTestCoordinator()
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		cmd := &main.ScrapeCmd{URL: "https://shop.test/mug"}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), `"category": "ecommerce"`)
		assert.Contains(t, stdout.String(), `"Ceramic Mug"`)
		assert.Empty(t, stderr.String())
	})

	t.Run("saves when requested", func(t *testing.T) {
		t.Parallel()

		var saved *pagelens.Scrape
		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Coordinator = newTestCoordinator()
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}
		deps.Scrapes = &mock.ScrapeService{
			CreateScrapeFn: func(_ context.Context, s *pagelens.Scrape) error {
				s.ID = "scrape-123"
				saved = s
				return nil
			},
		}

		cmd := &main.ScrapeCmd{URL: "https://shop.test/mug", Save: true}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, saved)
		assert.Equal(t, pagelens.CategoryEcommerce, saved.Category)
		assert.Equal(t, "https://shop.test/mug", saved.SourceURL)
		assert.Contains(t, stderr.String(), "saved scrape-123")
	})
}
