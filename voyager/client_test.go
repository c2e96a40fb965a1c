package voyager_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/voyager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token(ctx context.Context) (string, error) {
	return string(s), nil
}

func TestClient_FetchProfile(t *testing.T) {
	t.Parallel()

	t.Run("merges profile, contact info and skills", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Csrf-Token") != "tok-123" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			switch {
			case strings.Contains(r.URL.RequestURI(), "memberIdentity"):
				w.Write([]byte(`{
					"data": {},
					"included": [
						{
							"$type": "com.linkedin.voyager.dash.identity.profile.Profile",
							"firstName": "Jane",
							"lastName": "Doe",
							"headline": "Staff Engineer",
							"summary": "Builds things.",
							"locationName": "Warsaw, Poland"
						},
						{
							"$type": "com.linkedin.voyager.dash.identity.profile.Position",
							"title": "Staff Engineer",
							"companyName": "Acme",
							"dateRange": {"start": {"month": 3, "year": 2021}}
						},
						{
							"$type": "com.linkedin.voyager.dash.identity.profile.Education",
							"schoolName": "MIT",
							"degreeName": "BSc",
							"fieldOfStudy": "Computer Science",
							"dateRange": {"start": {"year": 2012}, "end": {"year": 2016}}
						}
					]
				}`))
			case strings.Contains(r.URL.Path, "profileContactInfo"):
				w.Write([]byte(`{
					"data": {
						"emailAddress": "jane@example.com",
						"phoneNumbers": [{"number": "+48 123 456 789"}],
						"websites": [{"url": "https://janedoe.dev"}],
						"birthDateOn": {"month": 7, "day": 14}
					}
				}`))
			case strings.Contains(r.URL.Path, "skills"):
				w.Write([]byte(`{"data": {"elements": [{"name": "Go"}, {"skill": {"name": "SQL"}}]}}`))
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer srv.Close()

		client := voyager.NewClient(staticTokens("tok-123"), voyager.WithBaseURL(srv.URL))
		rec, err := client.FetchProfile(context.Background(), "janedoe")
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", rec.Name)
		assert.Equal(t, "Staff Engineer", rec.Title)
		assert.Equal(t, "Acme", rec.Company)
		assert.Equal(t, "Warsaw, Poland", rec.Location)
		assert.Equal(t, "jane@example.com", rec.Email)
		assert.Equal(t, "+48 123 456 789", rec.Phone)
		assert.Equal(t, []string{"https://janedoe.dev"}, rec.Websites)
		assert.Equal(t, "7/14", rec.Birthday)
		assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
		require.Len(t, rec.Experience, 1)
		assert.Equal(t, "3/2021", rec.Experience[0].StartDate)
		assert.Equal(t, pagelens.EndDatePresent, rec.Experience[0].EndDate)
		require.Len(t, rec.Education, 1)
		assert.Equal(t, "MIT", rec.Education[0].School)
		assert.Equal(t, "BSc", rec.Education[0].Degree)
		assert.Equal(t, "Computer Science", rec.Education[0].Field)
		assert.Equal(t, "2012", rec.Education[0].StartDate)
		assert.Equal(t, "2016", rec.Education[0].EndDate)
		assert.Equal(t, srv.URL+"/in/janedoe", rec.ProfileURL)
	})

	t.Run("missing token is unavailable", func(t *testing.T) {
		t.Parallel()
		client := voyager.NewClient(staticTokens(""))
		_, err := client.FetchProfile(context.Background(), "janedoe")
		assert.Equal(t, pagelens.EUNAVAILABLE, pagelens.ErrorCode(err))
	})

	t.Run("nameless responses are unavailable", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data": {}, "included": []}`))
		}))
		defer srv.Close()

		client := voyager.NewClient(staticTokens("tok"), voyager.WithBaseURL(srv.URL))
		_, err := client.FetchProfile(context.Background(), "ghost")
		assert.Equal(t, pagelens.EUNAVAILABLE, pagelens.ErrorCode(err))
	})

	t.Run("partial call failures degrade to partial records", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.URL.RequestURI(), "memberIdentity") {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"included": [{"$type": "com.linkedin.voyager.identity.profile.Profile", "firstName": "Sam", "lastName": "Lee"}]}`))
				return
			}
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := voyager.NewClient(staticTokens("tok"), voyager.WithBaseURL(srv.URL))
		rec, err := client.FetchProfile(context.Background(), "samlee")
		require.NoError(t, err)
		assert.Equal(t, "Sam Lee", rec.Name)
		assert.Empty(t, rec.Email)
		assert.Empty(t, rec.Skills)
	})
}

func TestParseSessionToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "ajax:123", voyager.ParseSessionToken(`lang=en; JSESSIONID="ajax:123"; other=1`))
	assert.Equal(t, "ajax:456", voyager.ParseSessionToken(`JSESSIONID=ajax:456; x=y`))
	assert.Equal(t, "", voyager.ParseSessionToken("lang=en"))
}
