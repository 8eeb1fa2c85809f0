package mock

import "github.com/leetmommy/leetmommy"

var _ leetmommy.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of leetmommy.Extractor.
type Extractor struct {
	ExtractFn func(html string) *leetmommy.Document
}

func (e *Extractor) Extract(html string) *leetmommy.Document {
	return e.ExtractFn(html)
}
