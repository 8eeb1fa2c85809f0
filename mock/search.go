package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.SearchService = (*SearchService)(nil)

// SearchService is a mock implementation of leetmommy.SearchService.
type SearchService struct {
	SearchFn       func(ctx context.Context, index string, query string) ([]*leetmommy.Document, error)
	AutocompleteFn func(ctx context.Context, index string, text string) ([]*leetmommy.Match, error)
}

func (s *SearchService) Search(ctx context.Context, index string, query string) ([]*leetmommy.Document, error) {
	return s.SearchFn(ctx, index, query)
}

func (s *SearchService) Autocomplete(ctx context.Context, index string, text string) ([]*leetmommy.Match, error) {
	return s.AutocompleteFn(ctx, index, text)
}
