// Package voyager implements pagelens.ProfileAPI against the professional
// network's internal REST API. All lookups for a profile run concurrently
// and every failure degrades to absent data; only a profile with no
// resolvable name is reported as an error, so callers can fall back to
// DOM scraping.
package voyager

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pagelens/pagelens"
	"golang.org/x/sync/errgroup"
)

// DefaultBaseURL is the network origin the internal API lives on.
const DefaultBaseURL = "https://www.linkedin.com"

// DefaultHTTPTimeout caps each individual API call.
const DefaultHTTPTimeout = 10 * time.Second

// Ensure Client implements pagelens.ProfileAPI at compile time.
var _ pagelens.ProfileAPI = (*Client)(nil)

// Client fetches profiles through the internal API. It needs a
// TokenSource for the session-bound anti-forgery token; token failures
// surface as EUNAVAILABLE so the extraction degrades to DOM scraping.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     pagelens.TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API origin. Used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new Client.
func NewClient(tokens pagelens.TokenSource, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
		baseURL:    DefaultBaseURL,
		tokens:     tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProfile retrieves the profile for a member identity. The core
// profile, contact info and skills calls run in parallel; the context
// bounds the whole operation including the token relay.
func (c *Client) FetchProfile(ctx context.Context, username string) (*pagelens.ProfileRecord, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil || token == "" {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "anti-forgery token unavailable")
	}

	var profileResp, contactResp, skillsResp *apiResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profileResp = c.get(gctx, token, fmt.Sprintf(
			"/voyager/api/identity/dash/profiles?q=memberIdentity&memberIdentity=%s&decorationId=com.linkedin.voyager.dash.deco.identity.profile.FullProfileWithEntities-93",
			username))
		return nil
	})
	g.Go(func() error {
		contactResp = c.get(gctx, token, fmt.Sprintf("/voyager/api/identity/profiles/%s/profileContactInfo", username))
		return nil
	})
	g.Go(func() error {
		skillsResp = c.get(gctx, token, fmt.Sprintf("/voyager/api/identity/profiles/%s/skills?count=50", username))
		return nil
	})
	_ = g.Wait() // call failures degrade to nil responses

	rec := &pagelens.ProfileRecord{
		ProfileURL: c.baseURL + "/in/" + username,
		Experience: []pagelens.ExperienceEntry{},
		Education:  []pagelens.EducationEntry{},
		Skills:     []string{},
		Websites:   []string{},
	}
	if profileResp != nil {
		applyProfile(rec, profileResp)
	}
	if contactResp != nil {
		applyContactInfo(rec, contactResp)
	}
	if skillsResp != nil {
		if skills := extractSkills(skillsResp); len(skills) > 0 {
			rec.Skills = skills
		}
	}
	if rec.Company == "" {
		rec.Company = rec.CurrentCompany()
	}

	if rec.Name == "" {
		return nil, pagelens.Errorf(pagelens.EUNAVAILABLE, "profile %q yielded no name", username)
	}
	return rec, nil
}

// get performs one API call. Any failure - transport, status, decode -
// yields a nil response.
func (c *Client) get(ctx context.Context, token, path string) *apiResponse {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Csrf-Token", token)
	req.Header.Set("Accept", "application/vnd.linkedin.normalized+json+2.1")
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}
	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil
	}
	return &out
}

// apiResponse is the normalized-JSON envelope the API returns: a data
// object plus a flat included array of typed entities. Skills responses
// sometimes carry a top-level elements array instead.
type apiResponse struct {
	Data     map[string]any   `json:"data"`
	Included []map[string]any `json:"included"`
	Elements []map[string]any `json:"elements"`
}
