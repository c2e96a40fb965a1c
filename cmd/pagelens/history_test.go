package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	main "github.com/pagelens/pagelens/cmd/pagelens"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}
}

func TestHistoryListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists scrapes with ID, date, category, and URL", func(t *testing.T) {
		t.Parallel()

		scrapes := &mock.ScrapeService{
			FindScrapesFn: func(_ context.Context, filter pagelens.ScrapeFilter) ([]*pagelens.Scrape, error) {
				assert.Equal(t, 20, filter.Limit)
				assert.Nil(t, filter.Category)
				return []*pagelens.Scrape{
					{
						ID:        "scrape-123",
						Category:  pagelens.CategoryEcommerce,
						SourceURL: "https://shop.test/mug",
						CreatedAt: time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC),
					},
				}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scrapes = scrapes

		cmd := &main.HistoryListCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "scrape-123")
		assert.Contains(t, stdout.String(), "2025-03-07 10:00")
		assert.Contains(t, stdout.String(), "ecommerce")
		assert.Contains(t, stdout.String(), "https://shop.test/mug")
		assert.Empty(t, stderr.String())
	})

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		scrapes := &mock.ScrapeService{
			FindScrapesFn: func(_ context.Context, filter pagelens.ScrapeFilter) ([]*pagelens.Scrape, error) {
				require.NotNil(t, filter.Category)
				assert.Equal(t, pagelens.CategoryProfile, *filter.Category)
				return nil, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scrapes = scrapes

		cmd := &main.HistoryListCmd{Category: "professional_profile", Limit: 20}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No scrapes found")
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)

		cmd := &main.HistoryListCmd{Category: "blog"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestHistoryShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints scrape as JSON", func(t *testing.T) {
		t.Parallel()

		scrapes := &mock.ScrapeService{
			FindScrapeByIDFn: func(_ context.Context, id string) (*pagelens.Scrape, error) {
				assert.Equal(t, "scrape-123", id)
				return &pagelens.Scrape{
					ID:       "scrape-123",
					Category: pagelens.CategoryEcommerce,
					Envelope: pagelens.Envelope{
						Category: pagelens.CategoryEcommerce,
						Products: []pagelens.ProductRecord{{Name: "Ceramic Mug"}},
					},
				}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scrapes = scrapes

		cmd := &main.HistoryShowCmd{ID: "scrape-123"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), `"Ceramic Mug"`)
	})

	t.Run("unknown ID", func(t *testing.T) {
		t.Parallel()

		scrapes := &mock.ScrapeService{
			FindScrapeByIDFn: func(_ context.Context, id string) (*pagelens.Scrape, error) {
				return nil, pagelens.Errorf(pagelens.ENOTFOUND, "scrape not found")
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scrapes = scrapes

		cmd := &main.HistoryShowCmd{ID: "missing"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "scrape not found")
	})
}

func TestHistoryDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes scrape", func(t *testing.T) {
		t.Parallel()

		var deleted string
		scrapes := &mock.ScrapeService{
			DeleteScrapeFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Scrapes = scrapes

		cmd := &main.HistoryDeleteCmd{ID: "scrape-123"}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "scrape-123", deleted)
		assert.Contains(t, stdout.String(), "Deleted scrape scrape-123")
	})
}
