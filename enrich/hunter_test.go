package enrich_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pagelens/pagelens"
	"github.com/pagelens/pagelens/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHunter_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("FindsEmailViaDomainSearch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v2/domain-search":
				assert.Equal(t, "Acme", r.URL.Query().Get("company"))
				assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
				w.Write([]byte(`{"data":{"domain":"acme.test"}}`))
			case "/v2/email-finder":
				assert.Equal(t, "acme.test", r.URL.Query().Get("domain"))
				assert.Equal(t, "Jane", r.URL.Query().Get("first_name"))
				assert.Equal(t, "van Doe", r.URL.Query().Get("last_name"))
				w.Write([]byte(`{"data":{"email":"jane@acme.test","score":92}}`))
			default:
				t.Errorf("unexpected path %q", r.URL.Path)
			}
		}))
		defer srv.Close()

		h := enrich.NewHunter("test-key", enrich.WithBaseURL(srv.URL), enrich.WithRateLimit(1000))
		result, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{
			Name:    "Jane van Doe",
			Company: "Acme",
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@acme.test", result.Email)
		assert.Equal(t, "92% confidence", result.Confidence)
	})

	t.Run("WebsiteSkipsDomainSearch", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v2/email-finder", r.URL.Path)
			assert.Equal(t, "acme.test", r.URL.Query().Get("domain"))
			w.Write([]byte(`{"data":{"email":"jane@acme.test"}}`))
		}))
		defer srv.Close()

		h := enrich.NewHunter("test-key", enrich.WithBaseURL(srv.URL), enrich.WithRateLimit(1000))
		result, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{
			Name:     "Jane Doe",
			Websites: []string{"https://www.acme.test"},
		})
		require.NoError(t, err)
		assert.Equal(t, "jane@acme.test", result.Email)
		assert.Empty(t, result.Confidence)
	})

	t.Run("NoDomainResolvable", func(t *testing.T) {
		t.Parallel()

		h := enrich.NewHunter("test-key", enrich.WithRateLimit(1000))
		_, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{Name: "Jane Doe"})
		require.Error(t, err)
		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
	})

	t.Run("NoEmailFound", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{}}`))
		}))
		defer srv.Close()

		h := enrich.NewHunter("test-key", enrich.WithBaseURL(srv.URL), enrich.WithRateLimit(1000))
		_, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{
			Name:     "Jane Doe",
			Websites: []string{"acme.test"},
		})
		require.Error(t, err)
		assert.Equal(t, pagelens.ENOTFOUND, pagelens.ErrorCode(err))
	})

	t.Run("APIError", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"errors":[{"id":"authentication_failed","details":"Invalid API key."}]}`))
		}))
		defer srv.Close()

		h := enrich.NewHunter("bad-key", enrich.WithBaseURL(srv.URL), enrich.WithRateLimit(1000))
		_, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{
			Name:     "Jane Doe",
			Websites: []string{"acme.test"},
		})
		require.Error(t, err)
		assert.Equal(t, pagelens.EUNAVAILABLE, pagelens.ErrorCode(err))
		assert.Contains(t, err.Error(), "Invalid API key.")
	})

	t.Run("NoName", func(t *testing.T) {
		t.Parallel()

		h := enrich.NewHunter("test-key")
		_, err := h.Enrich(context.Background(), pagelens.EnrichmentRequest{Company: "Acme"})
		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})
}
