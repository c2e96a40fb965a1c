package mock

import "github.com/pagelens/pagelens"

var _ pagelens.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagelens.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
