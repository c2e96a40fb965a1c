package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pagelens/pagelens"
)

// DefaultSnovBaseURL is the Snov API root.
const DefaultSnovBaseURL = "https://api.snov.io"

var _ pagelens.Enricher = (*Snov)(nil)

// Snov finds emails through the Snov.io v2 email finder. The API key is
// expected in "clientID:clientSecret" form; an OAuth client-credentials
// exchange precedes each lookup.
type Snov struct {
	client
	clientID     string
	clientSecret string
}

// NewSnov creates a Snov enricher from an "id:secret" credential pair.
func NewSnov(apiKey string, opts ...Option) *Snov {
	id, secret, _ := strings.Cut(apiKey, ":")
	return &Snov{
		client:       newClient(DefaultSnovBaseURL, opts),
		clientID:     id,
		clientSecret: secret,
	}
}

// Name returns "snov".
func (s *Snov) Name() string { return "snov" }

// Enrich authenticates and finds the person's email by name and domain.
// Without a website in the request the domain is guessed from the
// company name.
func (s *Snov) Enrich(ctx context.Context, req pagelens.EnrichmentRequest) (*pagelens.EnrichmentResult, error) {
	first, last := splitName(req.Name)
	if first == "" {
		return nil, pagelens.Errorf(pagelens.EINVALID, "name required")
	}

	domain := requestDomain(req)
	if domain == "" && req.Company != "" {
		domain = guessDomain(req.Company)
	}
	if domain == "" {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "could not resolve a company domain for %q", req.Name)
	}

	token, err := s.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body struct {
		Email string `json:"email"`
	}
	err = s.post(ctx, "/v2/email-finder", token, map[string]string{
		"domain":    domain,
		"firstName": first,
		"lastName":  last,
	}, &body)
	if err != nil {
		return nil, err
	}

	if body.Email == "" {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "no email found for %q", req.Name)
	}
	return &pagelens.EnrichmentResult{Email: body.Email}, nil
}

func (s *Snov) accessToken(ctx context.Context) (string, error) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	err := s.post(ctx, "/v1/oauth/access_token", "", map[string]string{
		"grant_type":    "client_credentials",
		"client_id":     s.clientID,
		"client_secret": s.clientSecret,
	}, &body)
	if err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", pagelens.Errorf(pagelens.EUNAVAILABLE, "snov: could not authenticate, check credentials")
	}
	return body.AccessToken, nil
}

func (s *Snov) post(ctx context.Context, path, token string, payload map[string]string, out any) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return pagelens.Errorf(pagelens.EINTERNAL, "build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return pagelens.Errorf(pagelens.EUNAVAILABLE, "snov request failed: %v", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pagelens.Errorf(pagelens.EUNAVAILABLE, "snov: decode response: %v", err)
	}
	return nil
}

// guessDomain derives a best-effort domain from a company name.
func guessDomain(company string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(company) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return ""
	}
	return b.String() + ".com"
}
