package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/pagelens/pagelens"
)

// Compile-time interface verification.
var _ pagelens.ScrapeService = (*ScrapeService)(nil)

// ScrapeService implements pagelens.ScrapeService using SQLite. The
// envelope is stored as a JSON column; the payload hash lets callers spot
// repeated extractions of an unchanged page without comparing payloads.
type ScrapeService struct {
	db *DB
}

// NewScrapeService creates a new ScrapeService.
func NewScrapeService(db *DB) *ScrapeService {
	return &ScrapeService{db: db}
}

// hashPayload computes xxHash of the serialized envelope payload and
// returns a hex string.
func hashPayload(envelope []byte) string {
	h := xxhash.Sum64(envelope)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// CreateScrape persists a new scrape.
func (s *ScrapeService) CreateScrape(ctx context.Context, scrape *pagelens.Scrape) error {
	if err := scrape.Validate(); err != nil {
		return err
	}

	envelope, err := json.Marshal(scrape.Envelope)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}

	scrape.ID = uuid.New().String()
	scrape.CreatedAt = time.Now().UTC()
	scrape.PayloadHash = hashPayload(envelope)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO scrapes (id, category, source_url, page_title, envelope, payload_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, scrape.ID, string(scrape.Category), scrape.SourceURL, scrape.PageTitle,
		string(envelope), scrape.PayloadHash, scrape.CreatedAt.Format(time.RFC3339))

	return err
}

// FindScrapeByID retrieves a scrape by ID.
func (s *ScrapeService) FindScrapeByID(ctx context.Context, id string) (*pagelens.Scrape, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, category, source_url, page_title, envelope, payload_hash, created_at
		FROM scrapes
		WHERE id = ?
	`, id)

	scrape, err := scanScrape(row.Scan)
	if err == sql.ErrNoRows {
		return nil, pagelens.Errorf(pagelens.ENOTFOUND, "scrape not found")
	}
	if err != nil {
		return nil, err
	}
	return scrape, nil
}

// FindScrapes retrieves scrapes matching the filter.
func (s *ScrapeService) FindScrapes(ctx context.Context, filter pagelens.ScrapeFilter) ([]*pagelens.Scrape, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, category, source_url, page_title, envelope, payload_hash, created_at FROM scrapes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case pagelens.ScrapesBySourceURL:
		query.WriteString(" ORDER BY source_url ASC")
	default:
		query.WriteString(" ORDER BY created_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scrapes []*pagelens.Scrape
	for rows.Next() {
		scrape, err := scanScrape(rows.Scan)
		if err != nil {
			return nil, err
		}
		scrapes = append(scrapes, scrape)
	}

	return scrapes, rows.Err()
}

// DeleteScrape permanently removes a scrape.
func (s *ScrapeService) DeleteScrape(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM scrapes WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return pagelens.Errorf(pagelens.ENOTFOUND, "scrape not found")
	}

	return nil
}

// scanScrape reads one scrapes row through the given scan function and
// decodes the envelope column.
func scanScrape(scan func(dest ...any) error) (*pagelens.Scrape, error) {
	var scrape pagelens.Scrape
	var category, envelope, createdAt string

	if err := scan(&scrape.ID, &category, &scrape.SourceURL, &scrape.PageTitle,
		&envelope, &scrape.PayloadHash, &createdAt); err != nil {
		return nil, err
	}

	scrape.Category = pagelens.SiteCategory(category)
	if err := json.Unmarshal([]byte(envelope), &scrape.Envelope); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	var err error
	scrape.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &scrape, nil
}
