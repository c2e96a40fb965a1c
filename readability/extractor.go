// Package readability implements pagelens.ContentExtractor on top of
// go-readability. An alternative to the trafilatura extractor for pages
// where Readability's scoring works better.
package readability

import (
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/pagelens/pagelens"
)

// Ensure Extractor implements pagelens.ContentExtractor at compile time.
var _ pagelens.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*pagelens.ContentExtract, error) {
	if rawHTML == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &pagelens.ContentExtract{
		Title:       article.Title,
		ContentHTML: article.Content,
	}, nil
}
