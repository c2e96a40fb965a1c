package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pagelens/pagelens"
)

// DefaultApolloBaseURL is the Apollo API root.
const DefaultApolloBaseURL = "https://api.apollo.io"

var _ pagelens.Enricher = (*Apollo)(nil)

// Apollo matches people through the Apollo.io people-match endpoint.
// Unlike Hunter it needs no domain; the company name and profile URL
// are enough lookup keys.
type Apollo struct {
	client
	apiKey string
}

// NewApollo creates an Apollo enricher.
func NewApollo(apiKey string, opts ...Option) *Apollo {
	return &Apollo{
		client: newClient(DefaultApolloBaseURL, opts),
		apiKey: apiKey,
	}
}

// Name returns "apollo".
func (a *Apollo) Name() string { return "apollo" }

// Enrich matches the person and returns their email and phone numbers.
func (a *Apollo) Enrich(ctx context.Context, req pagelens.EnrichmentRequest) (*pagelens.EnrichmentResult, error) {
	first, last := splitName(req.Name)
	if first == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "name required")
	}

	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]string{
		"api_key":           a.apiKey,
		"first_name":        first,
		"last_name":         last,
		"organization_name": req.Company,
		"linkedin_url":      req.ProfileURL,
	})
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EINTERNAL, "marshal request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/people/match", bytes.NewReader(payload))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EINTERNAL, "build request: %v", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Cache-Control", "no-cache")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "apollo request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Person *struct {
			Email        string `json:"email"`
			PhoneNumbers []struct {
				SanitizedNumber string `json:"sanitized_number"`
				RawNumber       string `json:"raw_number"`
			} `json:"phone_numbers"`
		} `json:"person"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "apollo: decode response: %v", err)
	}

	if body.Person != nil {
		var phones []string
		for _, ph := range body.Person.PhoneNumbers {
			if ph.SanitizedNumber != "" {
				phones = append(phones, ph.SanitizedNumber)
			} else if ph.RawNumber != "" {
				phones = append(phones, ph.RawNumber)
			}
		}
		return &pagelens.EnrichmentResult{
			Email: body.Person.Email,
			Phone: strings.Join(phones, ", "),
		}, nil
	}

	if body.Error != "" {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "apollo: %s", body.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "apollo: http %d", resp.StatusCode)
	}
	return nil, pagelens.Errorf(pagelens.ENOTFOUND, "no match found for %q", req.Name)
}
