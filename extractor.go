package pagelens

// ContentExtract holds the main content extracted from an HTML page.
type ContentExtract struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ContentExtractor extracts main content from HTML pages, removing
// boilerplate. The general extractor uses it to produce a page's visible
// text; when unavailable it falls back to raw DOM text.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ContentExtract, error)
}
