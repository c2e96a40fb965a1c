// Package enrich implements contact-enrichment lookups against
// third-party contact-finder services (Hunter, Apollo, Snov).
package enrich

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pagelens/pagelens"
	"golang.org/x/time/rate"
)

// DefaultHTTPTimeout bounds each provider API call.
const DefaultHTTPTimeout = 15 * time.Second

// DefaultRPS is the per-provider request rate. Contact-finder APIs
// meter aggressively, so the default is conservative.
const DefaultRPS = 2.0

// client holds what every provider needs: an HTTP client, an overridable
// base URL and a rate limiter for the provider's host.
type client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func newClient(baseURL string, opts []Option) client {
	c := client{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(DefaultRPS), 1),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// wait applies the provider rate limit.
func (c *client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return pagelens.Errorf(pagelens.EUNAVAILABLE, "rate limit wait: %v", err)
	}
	return nil
}

// Option configures a provider client.
type Option func(*client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) { c.httpClient = httpClient }
}

// WithBaseURL overrides the provider API base URL. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *client) { c.baseURL = strings.TrimSuffix(baseURL, "/") }
}

// WithRateLimit overrides the provider request rate.
func WithRateLimit(rps float64) Option {
	return func(c *client) { c.limiter = rate.NewLimiter(rate.Limit(rps), 1) }
}

// New returns the enricher for a provider name.
// Returns EINVALID for an unknown provider or an empty API key.
func New(provider, apiKey string, opts ...Option) (pagelens.Enricher, error) {
	if apiKey == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "api key required")
	}
	switch provider {
	case "hunter":
		return NewHunter(apiKey, opts...), nil
	case "apollo":
		return NewApollo(apiKey, opts...), nil
	case "snov":
		return NewSnov(apiKey, opts...), nil
	}
	return nil, pagelens.Errorf(pagelens.EINVALID, "unknown provider %q", provider)
}

// splitName splits a display name into first name and the remainder.
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// ExtractDomain pulls a bare domain out of a website URL, tolerating
// scheme-less input and stripping a leading "www.".
func ExtractDomain(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// requestDomain resolves the lookup domain from the request's websites.
func requestDomain(req pagelens.EnrichmentRequest) string {
	for _, site := range req.Websites {
		if d := ExtractDomain(site); d != "" {
			return d
		}
	}
	return ""
}
