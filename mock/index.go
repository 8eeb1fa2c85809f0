package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.IndexService = (*IndexService)(nil)

// IndexService is a mock implementation of leetmommy.IndexService.
type IndexService struct {
	ExistsFn         func(ctx context.Context, index string) (bool, error)
	CreateIfAbsentFn func(ctx context.Context, index string, schema leetmommy.IndexSchema) (bool, error)
	RecreateFn       func(ctx context.Context, index string, schema leetmommy.IndexSchema) error
	DeleteFn         func(ctx context.Context, index string) error
}

func (s *IndexService) Exists(ctx context.Context, index string) (bool, error) {
	return s.ExistsFn(ctx, index)
}

func (s *IndexService) CreateIfAbsent(ctx context.Context, index string, schema leetmommy.IndexSchema) (bool, error) {
	return s.CreateIfAbsentFn(ctx, index, schema)
}

func (s *IndexService) Recreate(ctx context.Context, index string, schema leetmommy.IndexSchema) error {
	return s.RecreateFn(ctx, index, schema)
}

func (s *IndexService) Delete(ctx context.Context, index string) error {
	return s.DeleteFn(ctx, index)
}
