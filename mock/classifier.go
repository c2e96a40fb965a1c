package mock

import "github.com/pagelens/pagelens"

var _ pagelens.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of pagelens.Classifier.
type Classifier struct {
	ClassifyFn func(snap pagelens.Snapshot) pagelens.SiteCategory
}

func (c *Classifier) Classify(snap pagelens.Snapshot) pagelens.SiteCategory {
	return c.ClassifyFn(snap)
}
