package readability_test

import (
	"strings"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements pagelens.ContentExtractor at compile time.
var _ pagelens.ContentExtractor = (*readability.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts article content", func(t *testing.T) {
		t.Parallel()

		filler := strings.Repeat("Readability favors long continuous prose blocks over short fragments. ", 10)
		html := `<!DOCTYPE html>
<html>
<head><title>Field Notes</title></head>
<body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Field Notes</h1>
<p>` + filler + `</p>
</article>
<footer>Footer</footer>
</body>
</html>`

		ext := readability.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "long continuous prose")
		assert.Equal(t, "Field Notes", result.Title)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		ext := readability.NewExtractor()
		_, err := ext.Extract("")

		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})
}
