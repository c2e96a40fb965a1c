package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	extracted := time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC)

	t.Run("ProductTable", func(t *testing.T) {
		t.Parallel()

		md := export.Report(&pagelens.Envelope{
			Category:    pagelens.CategoryEcommerce,
			SourceURL:   "https://shop.test/mug",
			PageTitle:   "Ceramic Mug",
			ExtractedAt: extracted,
			Products: []pagelens.ProductRecord{
				{Name: "Ceramic Mug", Price: "19.99", Currency: "USD", Availability: "In Stock"},
			},
		})

		assert.Contains(t, md, "# Ceramic Mug")
		assert.Contains(t, md, "- Category: ecommerce")
		assert.Contains(t, md, "## Products (1)")
		assert.Contains(t, md, "| Ceramic Mug | 19.99 | USD | In Stock |")
	})

	t.Run("ProfileCard", func(t *testing.T) {
		t.Parallel()

		md := export.Report(&pagelens.Envelope{
			Category:    pagelens.CategoryProfile,
			SourceURL:   "https://network.test/in/janedoe",
			ExtractedAt: extracted,
			Profiles: []pagelens.ProfileRecord{{
				Name:    "Jane Doe",
				Title:   "Engineer",
				Company: "Acme",
				About:   "Builds things.",
				Experience: []pagelens.ExperienceEntry{
					{Title: "Engineer", Company: "Acme", StartDate: "3/2021", EndDate: pagelens.EndDatePresent},
				},
				Skills: []string{"Go", "SQL"},
			}},
		})

		assert.Contains(t, md, "## Jane Doe")
		assert.Contains(t, md, "- **Title:** Engineer")
		assert.Contains(t, md, "- Engineer, Acme (3/2021 – Present)")
		assert.Contains(t, md, "Go, SQL")
		assert.NotContains(t, md, "- **Email:**")
	})

	t.Run("FailedExtraction", func(t *testing.T) {
		t.Parallel()

		md := export.Report(&pagelens.Envelope{
			Category:    pagelens.CategoryGeneral,
			SourceURL:   "https://site.test",
			ExtractedAt: extracted,
			Error:       "Internal error.",
		})

		assert.Contains(t, md, "Extraction failed: Internal error.")
		assert.NotContains(t, md, "## Content")
	})
}

func TestWritePDF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := export.WritePDF(&buf, "# Report\n\nSome **bold** text.\n\n- item one\n")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
