package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService is a mock implementation of leetmommy.CrawlRunService.
type CrawlRunService struct {
	CreateCrawlRunFn func(ctx context.Context, run *leetmommy.CrawlRun) error
	FindCrawlRunsFn  func(ctx context.Context, filter leetmommy.CrawlRunFilter) ([]*leetmommy.CrawlRun, error)
}

func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *leetmommy.CrawlRun) error {
	return s.CreateCrawlRunFn(ctx, run)
}

func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, filter leetmommy.CrawlRunFilter) ([]*leetmommy.CrawlRun, error) {
	return s.FindCrawlRunsFn(ctx, filter)
}

var _ leetmommy.PageHashService = (*PageHashService)(nil)

// PageHashService is a mock implementation of leetmommy.PageHashService.
type PageHashService struct {
	FindPageHashesFn func(ctx context.Context, cohort leetmommy.Cohort) (map[string]string, error)
	SavePageHashesFn func(ctx context.Context, cohort leetmommy.Cohort, hashes map[string]string) error
}

func (s *PageHashService) FindPageHashes(ctx context.Context, cohort leetmommy.Cohort) (map[string]string, error) {
	return s.FindPageHashesFn(ctx, cohort)
}

func (s *PageHashService) SavePageHashes(ctx context.Context, cohort leetmommy.Cohort, hashes map[string]string) error {
	return s.SavePageHashesFn(ctx, cohort, hashes)
}
