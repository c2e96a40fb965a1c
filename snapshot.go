package pagelens

// Snapshot is a read-only capture of a loaded page: its location and the
// serialized DOM at capture time. Every probe, classifier and extractor
// operates on an explicit Snapshot rather than ambient document state, so
// the pipeline can run against synthetic fixtures without a live browser.
type Snapshot struct {
	// URL is the page location at capture time.
	URL string

	// Title is the page title. May be empty; extractors that need it fall
	// back to the <title> element in HTML.
	Title string

	// HTML is the serialized document.
	HTML string
}
