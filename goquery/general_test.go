package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pagelens/pagelens"
	pagelensgoquery "github.com/pagelens/pagelens/goquery"
	"github.com/pagelens/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneralExtractor_ExtractPage(t *testing.T) {
	t.Parallel()

	t.Run("extracts metadata, headings, links, images and tables", func(t *testing.T) {
		t.Parallel()
		snap := pagelensgoquery.NewSnapshot("https://example.com/guide", `<html><head>
			<title>Guide</title>
			<meta name="description" content="A guide.">
			<meta name="keywords" content="go,web">
			<meta name="author" content="Jane Doe">
			<meta property="og:title" content="The Guide">
			<meta property="og:description" content="OG description">
			</head><body>
			<h1>Intro</h1>
			<h2>Details</h2>
			<p>Some text about the guide.</p>
			<a href="/about">About us</a>
			<a href="https://other.example.com/page">Other</a>
			<a href="mailto:jane@example.com">Mail</a>
			<img src="/logo.png" alt="Logo" width="120" height="60">
			<table>
				<thead><tr><th>Name</th><th>Value</th></tr></thead>
				<tbody><tr><td>a</td><td>1</td></tr><tr><td>b</td><td>2</td></tr></tbody>
			</table>
			</body></html>`)

		e := pagelensgoquery.NewGeneralExtractor()
		rec, err := e.ExtractPage(snap)
		require.NoError(t, err)

		assert.Equal(t, "Guide", rec.Metadata.Title)
		assert.Equal(t, "A guide.", rec.Metadata.Description)
		assert.Equal(t, "go,web", rec.Metadata.Keywords)
		assert.Equal(t, "Jane Doe", rec.Metadata.Author)
		assert.Equal(t, "The Guide", rec.Metadata.OGTitle)
		assert.Equal(t, "OG description", rec.Metadata.OGDescription)
		assert.Equal(t, "https://example.com/guide", rec.Metadata.URL)

		require.Len(t, rec.Headings, 2)
		assert.Equal(t, pagelens.Heading{Level: 1, Text: "Intro"}, rec.Headings[0])
		assert.Equal(t, pagelens.Heading{Level: 2, Text: "Details"}, rec.Headings[1])

		require.Len(t, rec.Links, 2)
		assert.Equal(t, "https://example.com/about", rec.Links[0].URL)
		assert.Equal(t, "About us", rec.Links[0].Text)
		assert.Equal(t, "https://other.example.com/page", rec.Links[1].URL)

		require.Len(t, rec.Images, 1)
		assert.Equal(t, "https://example.com/logo.png", rec.Images[0].URL)
		assert.Equal(t, "Logo", rec.Images[0].Alt)
		assert.Equal(t, 120, rec.Images[0].Width)
		assert.Equal(t, 60, rec.Images[0].Height)

		require.Len(t, rec.Tables, 1)
		assert.Equal(t, []string{"Name", "Value"}, rec.Tables[0].Headers)
		assert.Equal(t, [][]string{{"a", "1"}, {"b", "2"}}, rec.Tables[0].Rows)

		assert.Contains(t, rec.TextContent, "Some text about the guide.")
	})

	t.Run("links deduplicate by url in document order", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < 10; i++ {
			b.WriteString(fmt.Sprintf(`<a href="/page%d">link %d</a>`, i%3, i))
		}
		b.WriteString("</body></html>")

		e := pagelensgoquery.NewGeneralExtractor()
		rec, err := e.ExtractPage(pagelens.Snapshot{URL: "https://example.com", HTML: b.String()})
		require.NoError(t, err)
		require.Len(t, rec.Links, 3)
		assert.Equal(t, "https://example.com/page0", rec.Links[0].URL)
		assert.Equal(t, "link 0", rec.Links[0].Text)
		assert.Equal(t, "https://example.com/page1", rec.Links[1].URL)
		assert.Equal(t, "https://example.com/page2", rec.Links[2].URL)
	})

	t.Run("caps are enforced", func(t *testing.T) {
		t.Parallel()
		var b strings.Builder
		b.WriteString("<html><body>")
		for i := 0; i < pagelens.MaxHeadings+20; i++ {
			fmt.Fprintf(&b, "<h2>Heading %d</h2>", i)
		}
		for i := 0; i < pagelens.MaxLinks+50; i++ {
			fmt.Fprintf(&b, `<a href="/p/%d">l</a>`, i)
		}
		for i := 0; i < pagelens.MaxImages+10; i++ {
			fmt.Fprintf(&b, `<img src="/i/%d.png">`, i)
		}
		b.WriteString("</body></html>")

		e := pagelensgoquery.NewGeneralExtractor()
		rec, err := e.ExtractPage(pagelens.Snapshot{URL: "https://example.com", HTML: b.String()})
		require.NoError(t, err)
		assert.Len(t, rec.Headings, pagelens.MaxHeadings)
		assert.Len(t, rec.Links, pagelens.MaxLinks)
		assert.Len(t, rec.Images, pagelens.MaxImages)
	})

	t.Run("text content is truncated", func(t *testing.T) {
		t.Parallel()
		html := "<html><body><p>" + strings.Repeat("word ", 20000) + "</p></body></html>"
		e := pagelensgoquery.NewGeneralExtractor()
		rec, err := e.ExtractPage(pagelens.Snapshot{URL: "https://example.com", HTML: html})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(rec.TextContent), pagelens.MaxTextContent)
	})

	t.Run("content extractor output is preferred over raw text", func(t *testing.T) {
		t.Parallel()
		snap := pagelens.Snapshot{URL: "https://example.com", HTML: `<html><body>
			<nav>Home About Contact</nav>
			<article><p>The real story.</p></article>
			</body></html>`}

		e := pagelensgoquery.NewGeneralExtractor(
			pagelensgoquery.WithContentExtractor(&mock.ContentExtractor{
				ExtractFn: func(html string) (*pagelens.ContentExtract, error) {
					return &pagelens.ContentExtract{ContentHTML: "<p>The real story.</p>"}, nil
				},
			}),
		)
		rec, err := e.ExtractPage(snap)
		require.NoError(t, err)
		assert.Equal(t, "The real story.", rec.TextContent)
	})

	t.Run("failing content extractor falls back to visible text", func(t *testing.T) {
		t.Parallel()
		snap := pagelens.Snapshot{URL: "https://example.com", HTML: `<html><body>
			<p>Visible body text.</p>
			<script>ignored()</script>
			</body></html>`}

		e := pagelensgoquery.NewGeneralExtractor(
			pagelensgoquery.WithContentExtractor(&mock.ContentExtractor{
				ExtractFn: func(html string) (*pagelens.ContentExtract, error) {
					return nil, pagelens.Errorf(pagelens.EINTERNAL, "boom")
				},
			}),
		)
		rec, err := e.ExtractPage(snap)
		require.NoError(t, err)
		assert.Equal(t, "Visible body text.", rec.TextContent)
		assert.NotContains(t, rec.TextContent, "ignored")
	})

	t.Run("markdown converter renders extracted content", func(t *testing.T) {
		t.Parallel()
		snap := pagelens.Snapshot{URL: "https://example.com", HTML: "<html><body><h1>T</h1></body></html>"}

		e := pagelensgoquery.NewGeneralExtractor(
			pagelensgoquery.WithContentExtractor(&mock.ContentExtractor{
				ExtractFn: func(html string) (*pagelens.ContentExtract, error) {
					return &pagelens.ContentExtract{ContentHTML: "<h1>T</h1>"}, nil
				},
			}),
			pagelensgoquery.WithMarkdownConverter(&mock.Converter{
				ConvertFn: func(html string) (string, error) { return "# T", nil },
			}),
		)
		rec, err := e.ExtractPage(snap)
		require.NoError(t, err)
		assert.Equal(t, "# T", rec.TextContent)
	})

	t.Run("empty document yields empty collections", func(t *testing.T) {
		t.Parallel()
		e := pagelensgoquery.NewGeneralExtractor()
		rec, err := e.ExtractPage(pagelens.Snapshot{URL: "https://example.com", HTML: ""})
		require.NoError(t, err)
		assert.NotNil(t, rec.Headings)
		assert.NotNil(t, rec.Links)
		assert.NotNil(t, rec.Images)
		assert.NotNil(t, rec.Tables)
		assert.Empty(t, rec.TextContent)
		assert.Equal(t, "https://example.com", rec.Metadata.URL)
	})
}
