package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingEnricher implements pagelens.Enricher.
var _ pagelens.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher with debug logging.
type LoggingEnricher struct {
	next   pagelens.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next pagelens.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the operation.
func (e *LoggingEnricher) Enrich(ctx context.Context, req pagelens.EnrichmentRequest) (res *pagelens.EnrichmentResult, err error) {
	defer func(begin time.Time) {
		found := res != nil && res.Email != ""
		e.logger.Info("contact enrichment",
			"provider", e.next.Name(),
			"company", req.Company,
			"found", found,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Enrich(ctx, req)
}

// Name delegates to the wrapped enricher.
func (e *LoggingEnricher) Name() string {
	return e.next.Name()
}
