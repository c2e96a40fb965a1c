package walk

import (
	"context"
	"time"

	"github.com/pagelens/pagelens"
)

// DefaultRetryDelays is the backoff schedule used by FetchWithRetry.
var DefaultRetryDelays = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// FetchWithRetry fetches a URL, retrying transient failures with the
// default backoff schedule.
func FetchWithRetry(ctx context.Context, fetcher pagelens.Fetcher, url string) (string, error) {
	return FetchWithRetryDelays(ctx, fetcher, url, DefaultRetryDelays)
}

// FetchWithRetryDelays fetches a URL, sleeping for each delay in turn
// between attempts. Invalid-input and not-found errors are returned
// immediately; retrying them cannot succeed.
func FetchWithRetryDelays(ctx context.Context, fetcher pagelens.Fetcher, url string, delays []time.Duration) (string, error) {
	html, err := fetcher.Fetch(ctx, url)
	if err == nil {
		return html, nil
	}

	for _, delay := range delays {
		switch pagelens.ErrorCode(err) {
		case pagelens.EINVALID, pagelens.ENOTFOUND:
			return "", err
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		html, err = fetcher.Fetch(ctx, url)
		if err == nil {
			return html, nil
		}
	}
	return "", err
}
