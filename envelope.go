package pagelens

import (
	"context"
	"time"
)

// Envelope is the sole unit returned across the extraction boundary.
// Exactly one payload field is populated, determined by Category:
// ecommerce carries Products, professional_profile carries Profiles and
// general carries Page. When an extractor fails outright, Error is set and
// all payload fields are nil.
type Envelope struct {
	Category    SiteCategory       `json:"category"`
	Products    []ProductRecord    `json:"products,omitempty"`
	Profiles    []ProfileRecord    `json:"profiles,omitempty"`
	Page        *GeneralPageRecord `json:"page,omitempty"`
	SourceURL   string             `json:"sourceUrl"`
	PageTitle   string             `json:"pageTitle"`
	ExtractedAt time.Time          `json:"extractedAt"`
	Error       string             `json:"error,omitempty"`
}

// CommerceExtractor runs the commerce strategy cascade against a snapshot.
type CommerceExtractor interface {
	// ExtractProducts returns the products found by the first strategy
	// that yields at least one record. Malformed structured-data blocks
	// are skipped per block, never fatal.
	ExtractProducts(snap Snapshot) ([]ProductRecord, error)
}

// ProfileExtractor extracts professional-network contacts from a snapshot.
// Extraction may involve internal-API calls bounded by the context.
type ProfileExtractor interface {
	ExtractProfiles(ctx context.Context, snap Snapshot) ([]ProfileRecord, error)
}

// GeneralExtractor performs the single-pass generic page extraction.
type GeneralExtractor interface {
	ExtractPage(snap Snapshot) (*GeneralPageRecord, error)
}
