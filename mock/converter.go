package mock

import "github.com/fwojciec/sourceeval"

var _ sourceeval.Converter = (*Converter)(nil)

// Converter is a mock implementation of sourceeval.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
