package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pagelens/pagelens"
)

// DefaultHunterBaseURL is the Hunter API root.
const DefaultHunterBaseURL = "https://api.hunter.io"

var _ pagelens.Enricher = (*Hunter)(nil)

// Hunter looks up emails through the Hunter.io v2 API: a domain search
// to resolve the company domain when the request carries no website,
// then an email-finder call for the person.
type Hunter struct {
	client
	apiKey string
}

// NewHunter creates a Hunter enricher.
func NewHunter(apiKey string, opts ...Option) *Hunter {
	return &Hunter{
		client: newClient(DefaultHunterBaseURL, opts),
		apiKey: apiKey,
	}
}

// Name returns "hunter".
func (h *Hunter) Name() string { return "hunter" }

// Enrich resolves the company domain and finds the person's email.
func (h *Hunter) Enrich(ctx context.Context, req pagelens.EnrichmentRequest) (*pagelens.EnrichmentResult, error) {
	first, last := splitName(req.Name)
	if first == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "name required")
	}

	domain := requestDomain(req)
	if domain == "" && req.Company != "" {
		domain = h.domainSearch(ctx, req.Company)
	}
	if domain == "" {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "could not resolve a company domain for %q", req.Name)
	}

	q := url.Values{}
	q.Set("domain", domain)
	q.Set("first_name", first)
	q.Set("last_name", last)
	q.Set("api_key", h.apiKey)

	var body struct {
		Data struct {
			Email string `json:"email"`
			Score int    `json:"score"`
		} `json:"data"`
		Errors []struct {
			ID      string `json:"id"`
			Details string `json:"details"`
		} `json:"errors"`
	}
	if err := h.get(ctx, "/v2/email-finder?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	if len(body.Errors) > 0 {
		msg := body.Errors[0].Details
		if msg == "" {
			msg = body.Errors[0].ID
		}
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "hunter: %s", msg)
	}
	if body.Data.Email == "" {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "no email found for %q", req.Name)
	}

	result := &pagelens.EnrichmentResult{Email: body.Data.Email}
	if body.Data.Score > 0 {
		result.Confidence = fmt.Sprintf("%d%% confidence", body.Data.Score)
	}
	return result, nil
}

// domainSearch resolves a company name to a domain. Failures degrade to
// an empty domain; the caller reports the combined miss.
func (h *Hunter) domainSearch(ctx context.Context, company string) string {
	q := url.Values{}
	q.Set("company", company)
	q.Set("api_key", h.apiKey)
	q.Set("limit", "1")

	var body struct {
		Data struct {
			Domain string `json:"domain"`
		} `json:"data"`
	}
	if err := h.get(ctx, "/v2/domain-search?"+q.Encode(), &body); err != nil {
		return ""
	}
	return body.Data.Domain
}

func (h *Hunter) get(ctx context.Context, path string, out any) error {
	if err := h.wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+path, nil)
	if err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "build request: %v", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return pagelens.Errorf(pagelens.EUNAVAILABLE, "hunter request failed: %v", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pagelens.Errorf(pagelens.EUNAVAILABLE, "hunter: decode response: %v", err)
	}
	return nil
}
