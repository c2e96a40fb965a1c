package goquery

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pagelens/pagelens"
)

// DefaultProfileTimeout bounds the internal-API lookup for an individual
// profile. When the deadline passes, extraction proceeds with whatever DOM
// fallback data is available instead of hanging on a blocked request.
const DefaultProfileTimeout = 8 * time.Second

// Ensure ProfileExtractor implements pagelens.ProfileExtractor at compile
// time.
var _ pagelens.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor extracts contacts from professional-network pages,
// branching on the URL path shape. Individual-profile paths go through the
// network's internal API when a client is configured, with DOM scraping as
// the fallback; search-result, organization and unrecognized paths are
// DOM-only.
type ProfileExtractor struct {
	api     pagelens.ProfileAPI
	timeout time.Duration
}

// ProfileOption configures a ProfileExtractor.
type ProfileOption func(*ProfileExtractor)

// WithProfileAPI enables internal-API lookups for individual profiles.
func WithProfileAPI(api pagelens.ProfileAPI) ProfileOption {
	return func(e *ProfileExtractor) {
		e.api = api
	}
}

// WithProfileTimeout sets the bounded wait for the API lookup.
// Defaults to DefaultProfileTimeout.
func WithProfileTimeout(d time.Duration) ProfileOption {
	return func(e *ProfileExtractor) {
		e.timeout = d
	}
}

// NewProfileExtractor creates a new ProfileExtractor.
func NewProfileExtractor(opts ...ProfileOption) *ProfileExtractor {
	e := &ProfileExtractor{timeout: DefaultProfileTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractProfiles extracts contact records from the snapshot.
func (e *ProfileExtractor) ExtractProfiles(ctx context.Context, snap pagelens.Snapshot) ([]pagelens.ProfileRecord, error) {
	doc := parseSnapshot(snap)
	if doc == nil {
		return []pagelens.ProfileRecord{}, nil
	}

	path := ""
	if u, err := url.Parse(snap.URL); err == nil {
		path = u.Path
	}

	switch {
	case strings.HasPrefix(path, "/in/"):
		return e.extractIndividual(ctx, snap, doc, path), nil
	case strings.Contains(path, "/search/"):
		return extractSearchResults(doc), nil
	case strings.Contains(path, "/company/"):
		return []pagelens.ProfileRecord{extractOrganization(doc, snap.URL)}, nil
	default:
		return []pagelens.ProfileRecord{scrapeProfileDOM(doc, snap.URL)}, nil
	}
}

// extractIndividual resolves one profile, preferring the internal API and
// filling gaps (or everything, when the API is unavailable) from the
// rendered DOM.
func (e *ProfileExtractor) extractIndividual(ctx context.Context, snap pagelens.Snapshot, doc *goquery.Document, path string) []pagelens.ProfileRecord {
	username := usernameFromPath(path)
	domRec := scrapeProfileDOM(doc, snap.URL)

	if e.api == nil || username == "" {
		return []pagelens.ProfileRecord{domRec}
	}

	apiCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	rec, err := e.api.FetchProfile(apiCtx, username)
	if err != nil || rec == nil {
		return []pagelens.ProfileRecord{domRec}
	}

	mergeProfile(rec, domRec)
	if rec.ProfileURL == "" {
		rec.ProfileURL = domRec.ProfileURL
	}
	return []pagelens.ProfileRecord{*rec}
}

// usernameFromPath extracts the member identity from an /in/ path.
func usernameFromPath(path string) string {
	rest := strings.TrimPrefix(path, "/in/")
	if idx := strings.IndexAny(rest, "/?"); idx != -1 {
		rest = rest[:idx]
	}
	return rest
}

// mergeProfile fills empty fields of the API record from the DOM fallback.
func mergeProfile(dst *pagelens.ProfileRecord, fallback pagelens.ProfileRecord) {
	if dst.Name == "" {
		dst.Name = fallback.Name
	}
	if dst.Title == "" {
		dst.Title = fallback.Title
	}
	if dst.Email == "" {
		dst.Email = fallback.Email
	}
	if dst.Phone == "" {
		dst.Phone = fallback.Phone
	}
	if dst.Company == "" {
		dst.Company = fallback.Company
	}
	if dst.Location == "" {
		dst.Location = fallback.Location
	}
	if dst.About == "" {
		dst.About = fallback.About
	}
	if dst.ConnectionsCount == "" {
		dst.ConnectionsCount = fallback.ConnectionsCount
	}
	if len(dst.Experience) == 0 {
		dst.Experience = fallback.Experience
	}
	if len(dst.Education) == 0 {
		dst.Education = fallback.Education
	}
	if len(dst.Skills) == 0 {
		dst.Skills = fallback.Skills
	}
	if len(dst.Websites) == 0 {
		dst.Websites = fallback.Websites
	}
	if dst.SocialHandle == "" {
		dst.SocialHandle = fallback.SocialHandle
	}
	if dst.Birthday == "" {
		dst.Birthday = fallback.Birthday
	}
}

var searchResultSelectors = strings.Join([]string{
	"li.reusable-search__result-container",
	`div[data-view-name="search-entity-result-universal-template"]`,
	`li[class*="search-result"]`,
	`div[class*="entity-result"]`,
}, ", ")

// extractSearchResults iterates result cards and yields one thin record
// per card. Cards with no resolvable name, or a name shorter than two
// characters, are skipped.
func extractSearchResults(doc *goquery.Document) []pagelens.ProfileRecord {
	records := []pagelens.ProfileRecord{}
	doc.Find(searchResultSelectors).Each(func(_ int, card *goquery.Selection) {
		name := collapseSpace(card.Find(`span[dir="ltr"] > span[aria-hidden="true"]`).First().Text())
		if name == "" {
			name = collapseSpace(card.Find(`span[aria-hidden="true"]`).First().Text())
		}
		if len([]rune(name)) < 2 {
			return
		}

		profileURL := ""
		if href, ok := card.Find(`a[href*="/in/"]`).First().Attr("href"); ok {
			profileURL = stripQuery(href)
		}

		records = append(records, pagelens.ProfileRecord{
			Name:       name,
			Title:      cardText(card, ".entity-result__primary-subtitle", `div[class*="entity-result__primary-subtitle"]`),
			Location:   cardText(card, ".entity-result__secondary-subtitle", `div[class*="entity-result__secondary-subtitle"]`),
			ProfileURL: profileURL,
			Experience: []pagelens.ExperienceEntry{},
			Education:  []pagelens.EducationEntry{},
			Skills:     []string{},
			Websites:   []string{},
		})
	})
	return records
}

func cardText(card *goquery.Selection, selectors ...string) string {
	for _, sel := range selectors {
		if text := collapseSpace(card.Find(sel).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// extractOrganization scrapes an organization page into a single record.
func extractOrganization(doc *goquery.Document, pageURL string) pagelens.ProfileRecord {
	name := domText(doc.Find("h1 span"))
	if name == "" {
		name = domText(doc.Find("h1"))
	}
	return pagelens.ProfileRecord{
		Name:    name,
		Title:   "Company",
		Company: domText(doc.Find(".org-top-card-summary-info-list__info-item")),
		About: pagelens.Clip(
			firstText(doc, `[class*="org-about"] p`, ".org-about-company-module__description"),
			pagelens.MaxProfileAbout,
		),
		ProfileURL: stripQuery(pageURL),
		Experience: []pagelens.ExperienceEntry{},
		Education:  []pagelens.EducationEntry{},
		Skills:     []string{},
		Websites:   []string{},
	}
}

// scrapeProfileDOM scrapes a best-effort record from a rendered profile
// page.
func scrapeProfileDOM(doc *goquery.Document, pageURL string) pagelens.ProfileRecord {
	email := ""
	if href, ok := doc.Find(`a[href^="mailto:"]`).First().Attr("href"); ok {
		email = stripQuery(strings.TrimPrefix(href, "mailto:"))
	}
	phone := ""
	if href, ok := doc.Find(`a[href^="tel:"]`).First().Attr("href"); ok {
		phone = strings.TrimPrefix(href, "tel:")
	}

	return pagelens.ProfileRecord{
		Name:       domText(doc.Find("h1")),
		Title:      domText(doc.Find(".text-body-medium.break-words, div.text-body-medium")),
		Email:      email,
		Phone:      phone,
		ProfileURL: stripQuery(pageURL),
		Experience: []pagelens.ExperienceEntry{},
		Education:  []pagelens.EducationEntry{},
		Skills:     []string{},
		Websites:   []string{},
	}
}
