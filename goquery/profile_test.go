package goquery_test

import (
	"context"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	pagelensgoquery "github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const individualProfileHTML = `<html><body>
	<h1>Jane Doe</h1>
	<div class="text-body-medium break-words">Staff Engineer at Acme</div>
	<a href="mailto:jane@example.com?subject=hi">Email</a>
	<a href="tel:+48123456789">Call</a>
</body></html>`

func TestProfileExtractor_ExtractProfiles(t *testing.T) {
	t.Parallel()

	t.Run("individual profile without api scrapes the dom", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewProfileExtractor()
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/in/janedoe?trk=feed", HTML: individualProfileHTML}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		p := profiles[0]
		assert.Equal(t, "Jane Doe", p.Name)
		assert.Equal(t, "Staff Engineer at Acme", p.Title)
		assert.Equal(t, "jane@example.com", p.Email)
		assert.Equal(t, "+48123456789", p.Phone)
		assert.Equal(t, "https://www.linkedin.com/in/janedoe", p.ProfileURL)
	})

	t.Run("api record wins with dom filling the gaps", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewProfileExtractor(
			pagelensgoquery.WithProfileAPI(&mock.ProfileAPI{
				FetchProfileFn: func(ctx context.Context, username string) (*pagelens.ProfileRecord, error) {
					assert.Equal(t, "janedoe", username)
					return &pagelens.ProfileRecord{
						Name:    "Jane A. Doe",
						Company: "Acme",
						Skills:  []string{"Go"},
					}, nil
				},
			}),
		)
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/in/janedoe", HTML: individualProfileHTML}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		p := profiles[0]
		assert.Equal(t, "Jane A. Doe", p.Name)
		assert.Equal(t, "Acme", p.Company)
		assert.Equal(t, []string{"Go"}, p.Skills)
		// gaps filled from the rendered page
		assert.Equal(t, "Staff Engineer at Acme", p.Title)
		assert.Equal(t, "jane@example.com", p.Email)
		assert.Equal(t, "https://www.linkedin.com/in/janedoe", p.ProfileURL)
	})

	t.Run("api failure falls back to the dom record", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewProfileExtractor(
			pagelensgoquery.WithProfileAPI(&mock.ProfileAPI{
				FetchProfileFn: func(ctx context.Context, username string) (*pagelens.ProfileRecord, error) {
					return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "no session")
				},
			}),
		)
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/in/janedoe", HTML: individualProfileHTML}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Jane Doe", profiles[0].Name)
	})

	t.Run("hung api is bounded by the timeout", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewProfileExtractor(
			pagelensgoquery.WithProfileAPI(&mock.ProfileAPI{
				FetchProfileFn: func(ctx context.Context, username string) (*pagelens.ProfileRecord, error) {
					<-ctx.Done()
					return nil, ctx.Err()
				},
			}),
			pagelensgoquery.WithProfileTimeout(30*time.Millisecond),
		)
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/in/janedoe", HTML: individualProfileHTML}

		start := time.Now()
		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Jane Doe", profiles[0].Name)
	})

	t.Run("search results yield one thin record per card", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><ul>
			<li class="reusable-search__result-container">
				<span dir="ltr"><span aria-hidden="true">Alice Smith</span></span>
				<div class="entity-result__primary-subtitle">CTO at Widgets</div>
				<div class="entity-result__secondary-subtitle">Berlin</div>
				<a href="https://www.linkedin.com/in/alicesmith?miniProfile=x">profile</a>
			</li>
			<li class="reusable-search__result-container">
				<span dir="ltr"><span aria-hidden="true">Bob Jones</span></span>
			</li>
			<li class="reusable-search__result-container">
				<span aria-hidden="true">A</span>
			</li>
		</ul></body></html>`

		e := pagelensgoquery.NewProfileExtractor()
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/search/results/people/?keywords=go", HTML: html}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "Alice Smith", profiles[0].Name)
		assert.Equal(t, "CTO at Widgets", profiles[0].Title)
		assert.Equal(t, "Berlin", profiles[0].Location)
		assert.Equal(t, "https://www.linkedin.com/in/alicesmith", profiles[0].ProfileURL)
		assert.Equal(t, "Bob Jones", profiles[1].Name)
	})

	t.Run("company page yields an organization record", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<h1><span aria-hidden="true">Acme Corp</span></h1>
			<div class="org-top-card-summary-info-list__info-item">Software Development</div>
			<section class="org-about-module"><p>We make widgets for everyone.</p></section>
		</body></html>`

		e := pagelensgoquery.NewProfileExtractor()
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/company/acme/?originalSubdomain=pl", HTML: html}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		p := profiles[0]
		assert.Equal(t, "Acme Corp", p.Name)
		assert.Equal(t, "Company", p.Title)
		assert.Equal(t, "Software Development", p.Company)
		assert.Equal(t, "We make widgets for everyone.", p.About)
		assert.Equal(t, "https://www.linkedin.com/company/acme/", p.ProfileURL)
	})

	t.Run("unrecognized path scrapes a single dom record", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewProfileExtractor()
		snap := pagelens.Snapshot{URL: "https://www.linkedin.com/feed/", HTML: `<html><body><h1>Feed</h1></body></html>`}

		profiles, err := e.ExtractProfiles(context.Background(), snap)
		require.NoError(t, err)
		require.Len(t, profiles, 1)
		assert.Equal(t, "Feed", profiles[0].Name)
	})
}
