package mock

import (
	"context"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.CohortCrawler = (*CohortCrawler)(nil)

// CohortCrawler is a mock implementation of leetmommy.CohortCrawler.
type CohortCrawler struct {
	CrawlFn func(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.CrawlResult, error)
}

func (c *CohortCrawler) Crawl(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.CrawlResult, error) {
	return c.CrawlFn(ctx, cohort)
}

var _ leetmommy.CohortIndexer = (*CohortIndexer)(nil)

// CohortIndexer is a mock implementation of leetmommy.CohortIndexer.
type CohortIndexer struct {
	IndexCohortFn func(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.IndexResult, error)
}

func (i *CohortIndexer) IndexCohort(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.IndexResult, error) {
	return i.IndexCohortFn(ctx, cohort)
}
