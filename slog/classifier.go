// Package slog provides logging decorators for the pagelens service
// interfaces, built on the standard library's structured logger.
package slog

import (
	"log/slog"
	"time"

	"github.com/pagelens/pagelens"
)

// Ensure LoggingClassifier implements pagelens.Classifier.
var _ pagelens.Classifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a Classifier with debug logging for site-type
// detection.
type LoggingClassifier struct {
	next   pagelens.Classifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next pagelens.Classifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs the outcome.
func (c *LoggingClassifier) Classify(snap pagelens.Snapshot) pagelens.SiteCategory {
	begin := time.Now()
	category := c.next.Classify(snap)
	c.logger.Info("site classification",
		"url", snap.URL,
		"category", string(category),
		"duration", time.Since(begin),
	)
	return category
}
