package pagelens

import "context"

// Fetcher retrieves HTML from URLs, standing in for a live browser tab.
// Implementations may use browser automation for JavaScript-rendered pages.
type Fetcher interface {
	// Fetch retrieves the HTML for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
