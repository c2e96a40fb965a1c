package pagelens

import "context"

// Caps, in runes, on free-text profile fields.
const (
	MaxProfileAbout          = 1000
	MaxExperienceDescription = 300
)

// EndDatePresent is the sentinel end date for an open-ended position.
const EndDatePresent = "Present"

// ProfileRecord is a normalized professional-network contact.
// String fields default to empty, collections to empty slices.
type ProfileRecord struct {
	Name             string            `json:"name"`
	Title            string            `json:"title"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Company          string            `json:"company"`
	Location         string            `json:"location"`
	ProfileURL       string            `json:"profileUrl"`
	About            string            `json:"about"`
	ConnectionsCount string            `json:"connectionsCount"`
	Experience       []ExperienceEntry `json:"experience"`
	Education        []EducationEntry  `json:"education"`
	Skills           []string          `json:"skills"`
	Websites         []string          `json:"websites"`
	SocialHandle     string            `json:"socialHandle"`
	Birthday         string            `json:"birthday"`
}

// ExperienceEntry is a single position in a profile's work history.
type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"` // EndDatePresent when open-ended
	Description string `json:"description"`
}

// EducationEntry is a single school in a profile's education history.
type EducationEntry struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CurrentCompany returns the company of the experience entry whose end date
// is the open-ended sentinel, falling back to the first entry.
func (p *ProfileRecord) CurrentCompany() string {
	for _, exp := range p.Experience {
		if exp.EndDate == EndDatePresent {
			return exp.Company
		}
	}
	if len(p.Experience) > 0 {
		return p.Experience[0].Company
	}
	return ""
}

// ProfileAPI fetches a profile through the network's internal API.
// Implementations run their lookups concurrently and must respect the
// context deadline; a profile with no resolvable name is an error so
// callers can fall back to DOM scraping.
type ProfileAPI interface {
	// FetchProfile retrieves the profile for a member identity.
	// Returns EUNAVAILABLE when the anti-forgery token or the API cannot
	// be reached, or when the response yields no name.
	FetchProfile(ctx context.Context, username string) (*ProfileRecord, error)
}

// TokenSource supplies the session-bound anti-forgery token required by
// internal-API calls. The token lives in a cookie that is not visible to
// the extraction context, so implementations typically relay it from a
// more privileged execution context; Token blocks until the relay
// completes or the context deadline expires.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}
