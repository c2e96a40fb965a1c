package voyager

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pagelens/pagelens"
)

// Entity type URNs vary across API revisions; each concern matches the
// known variants by suffix.
func entityType(m map[string]any) string {
	s, _ := m["$type"].(string)
	return s
}

func isProfileEntity(t string) bool {
	return strings.HasSuffix(t, ".identity.profile.Profile") ||
		strings.HasSuffix(t, ".dash.identity.profile.Profile")
}

func isMiniProfileEntity(t string) bool {
	return strings.HasSuffix(t, ".identity.shared.MiniProfile")
}

func isPositionEntity(t string) bool {
	return strings.HasSuffix(t, ".identity.profile.Position") ||
		strings.HasSuffix(t, ".dash.identity.profile.Position")
}

func isEducationEntity(t string) bool {
	return strings.HasSuffix(t, ".identity.profile.Education") ||
		strings.HasSuffix(t, ".dash.identity.profile.Education")
}

func isSkillEntity(t string) bool {
	return strings.HasSuffix(t, ".identity.profile.Skill") ||
		strings.HasSuffix(t, ".dash.identity.profile.Skill")
}

func isNetworkInfoEntity(t string) bool {
	return strings.HasSuffix(t, ".NetworkInfo")
}

// applyProfile fills rec from the core profile response's included
// entities. Positions and educations arrive as separate entities from
// the same flat array.
func applyProfile(rec *pagelens.ProfileRecord, resp *apiResponse) {
	for _, ent := range resp.Included {
		t := entityType(ent)
		switch {
		case isProfileEntity(t):
			name := joinName(str(ent, "firstName"), str(ent, "lastName"))
			if name != "" {
				rec.Name = name
			}
			if v := str(ent, "headline"); v != "" {
				rec.Title = v
			}
			if v := str(ent, "summary", "about"); v != "" {
				rec.About = pagelens.Clip(v, pagelens.MaxProfileAbout)
			}
			if v := str(ent, "locationName", "geoLocationName"); v != "" {
				rec.Location = v
			}
		case isMiniProfileEntity(t):
			if rec.Name == "" {
				rec.Name = joinName(str(ent, "firstName"), str(ent, "lastName"))
			}
			if rec.Title == "" {
				rec.Title = str(ent, "occupation")
			}
		case isPositionEntity(t):
			if pos, ok := positionFromEntity(ent); ok {
				rec.Experience = append(rec.Experience, pos)
			}
		case isEducationEntity(t):
			if edu, ok := educationFromEntity(ent); ok {
				rec.Education = append(rec.Education, edu)
			}
		case isNetworkInfoEntity(t):
			if v := numStr(ent, "connectionsCount"); v != "" {
				rec.ConnectionsCount = v
			}
		}
	}
}

func positionFromEntity(ent map[string]any) (pagelens.ExperienceEntry, bool) {
	pos := pagelens.ExperienceEntry{
		Title:    str(ent, "title"),
		Company:  str(ent, "companyName"),
		Location: str(ent, "locationName"),
	}
	if pos.Title == "" && pos.Company == "" {
		return pagelens.ExperienceEntry{}, false
	}
	start, end := dateSpan(ent)
	pos.StartDate = start
	pos.EndDate = end
	if v := str(ent, "description"); v != "" {
		pos.Description = pagelens.Clip(v, pagelens.MaxExperienceDescription)
	}
	return pos, true
}

func educationFromEntity(ent map[string]any) (pagelens.EducationEntry, bool) {
	edu := pagelens.EducationEntry{
		School: str(ent, "schoolName", "school"),
		Degree: str(ent, "degreeName", "degree"),
		Field:  str(ent, "fieldOfStudy"),
	}
	if edu.School == "" && edu.Degree == "" {
		return pagelens.EducationEntry{}, false
	}
	edu.StartDate, edu.EndDate = dateSpan(ent)
	return edu, true
}

// dateSpan reads either the dash dateRange shape or the legacy
// timePeriod shape. An open-ended range reports "Present" as the end.
func dateSpan(ent map[string]any) (start, end string) {
	if dr, ok := ent["dateRange"].(map[string]any); ok {
		start = formatAPIDate(dr["start"])
		end = formatAPIDate(dr["end"])
	} else if tp, ok := ent["timePeriod"].(map[string]any); ok {
		start = formatAPIDate(tp["startDate"])
		end = formatAPIDate(tp["endDate"])
	} else {
		return "", ""
	}
	if end == "" {
		end = pagelens.EndDatePresent
	}
	return start, end
}

// formatAPIDate renders a {month, year} object as "M/YYYY", or "YYYY"
// when only the year is present.
func formatAPIDate(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	year := numStr(m, "year")
	if year == "" {
		return ""
	}
	if month := numStr(m, "month"); month != "" {
		return month + "/" + year
	}
	return year
}

// applyContactInfo fills the contact fields from the contact-info
// response's data object.
func applyContactInfo(rec *pagelens.ProfileRecord, resp *apiResponse) {
	d := resp.Data
	if d == nil {
		return
	}
	if v := str(d, "emailAddress"); v != "" {
		rec.Email = v
	}
	if phones, ok := d["phoneNumbers"].([]any); ok && len(phones) > 0 {
		if pm, ok := phones[0].(map[string]any); ok {
			rec.Phone = str(pm, "number")
		}
	}
	if handles, ok := d["twitterHandles"].([]any); ok {
		var names []string
		for _, h := range handles {
			if hm, ok := h.(map[string]any); ok {
				if name := str(hm, "name"); name != "" {
					names = append(names, name)
				}
			}
		}
		if len(names) > 0 {
			rec.SocialHandle = strings.Join(names, ", ")
		}
	}
	if sites, ok := d["websites"].([]any); ok {
		for _, s := range sites {
			if sm, ok := s.(map[string]any); ok {
				if u := str(sm, "url"); u != "" {
					rec.Websites = append(rec.Websites, u)
				}
			}
		}
	}
	if bd, ok := d["birthDateOn"].(map[string]any); ok {
		month, day := numStr(bd, "month"), numStr(bd, "day")
		if month != "" && day != "" {
			rec.Birthday = month + "/" + day
		}
	}
}

// extractSkills reads skill names from whichever shape the response
// uses: data.elements, a top-level elements array, or included Skill
// entities.
func extractSkills(resp *apiResponse) []string {
	var skills []string
	add := func(m map[string]any) {
		name := str(m, "name")
		if name == "" {
			if sk, ok := m["skill"].(map[string]any); ok {
				name = str(sk, "name")
			}
		}
		if name != "" {
			skills = append(skills, name)
		}
	}
	if resp.Data != nil {
		if els, ok := resp.Data["elements"].([]any); ok {
			for _, el := range els {
				if m, ok := el.(map[string]any); ok {
					add(m)
				}
			}
		}
	}
	for _, el := range resp.Elements {
		add(el)
	}
	if len(skills) == 0 {
		for _, ent := range resp.Included {
			if isSkillEntity(entityType(ent)) {
				add(ent)
			}
		}
	}
	return skills
}

// str returns the first non-empty string value among keys.
func str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// numStr renders a JSON number value as a plain integer string.
func numStr(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

var sessionTokenPattern = regexp.MustCompile(`JSESSIONID="?([^";]+)"?`)

// ParseSessionToken extracts the anti-forgery token from a raw Cookie
// header value. Returns "" when no session cookie is present.
func ParseSessionToken(cookies string) string {
	m := sessionTokenPattern.FindStringSubmatch(cookies)
	if m == nil {
		return ""
	}
	return m[1]
}
