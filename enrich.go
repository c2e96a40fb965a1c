package pagelens

import "context"

// EnrichmentRequest carries the lookup keys for a contact-enrichment query.
// The fields mirror the ProfileRecord fields they are taken from.
type EnrichmentRequest struct {
	Name       string   `json:"name"`
	Company    string   `json:"company"`
	Websites   []string `json:"websites"`
	ProfileURL string   `json:"profileUrl"`
}

// EnrichmentResult is the outcome of a contact-enrichment lookup.
type EnrichmentResult struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Confidence string `json:"confidence"`
}

// Enricher looks up contact details for a profile through a third-party
// contact-finder service.
type Enricher interface {
	// Enrich queries the provider for the given keys.
	// Returns ENOTFOUND when the provider has no match and EUNAVAILABLE
	// when the provider cannot be reached or rejects the credentials.
	Enrich(ctx context.Context, req EnrichmentRequest) (*EnrichmentResult, error)

	// Name returns the provider's identifier (e.g., "hunter").
	Name() string
}
