package mock

import "github.com/leetmommy/leetmommy"

var _ leetmommy.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of leetmommy.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	return s.ExtractLinksFn(html, baseURL)
}
