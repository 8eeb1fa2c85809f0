package leetmommy

import (
	"context"
	"time"
)

// CrawlStatus is the outcome of a crawl run.
type CrawlStatus string

// CrawlStatus values.
const (
	CrawlSucceeded CrawlStatus = "succeeded"
	CrawlFailed    CrawlStatus = "failed"
	CrawlTimedOut  CrawlStatus = "timeout"
)

// CrawlRun records one crawl-and-index invocation for a cohort.
type CrawlRun struct {
	ID           string      `json:"id"`
	Cohort       Cohort      `json:"cohort"`
	Status       CrawlStatus `json:"status"`
	Documents    int         `json:"documents"`
	FailedPages  int         `json:"failedPages"`
	FailedWrites int         `json:"failedWrites"`
	Changed      int         `json:"changed"`
	Error        string      `json:"error,omitempty"`
	StartedAt    time.Time   `json:"startedAt"`
	FinishedAt   time.Time   `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *CrawlRun) Validate() error {
	if r.Cohort == "" {
		return Errorf(EINVALID, "crawl run cohort required")
	}
	switch r.Status {
	case CrawlSucceeded, CrawlFailed, CrawlTimedOut:
	default:
		return Errorf(EINVALID, "crawl run status %q invalid", r.Status)
	}
	return nil
}

// CrawlRunService represents a service for recording crawl history.
type CrawlRunService interface {
	// CreateCrawlRun stores a finished run and assigns its ID.
	CreateCrawlRun(ctx context.Context, run *CrawlRun) error

	// FindCrawlRuns retrieves runs matching the filter, newest first.
	FindCrawlRuns(ctx context.Context, filter CrawlRunFilter) ([]*CrawlRun, error)
}

// CrawlRunFilter represents a filter for FindCrawlRuns.
type CrawlRunFilter struct {
	Cohort *Cohort `json:"cohort"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageHashService stores content fingerprints of the last indexed version
// of each page, keyed by URL.
type PageHashService interface {
	FindPageHashes(ctx context.Context, cohort Cohort) (map[string]string, error)
	SavePageHashes(ctx context.Context, cohort Cohort, hashes map[string]string) error
}

// CohortIndexer crawls a cohort and synchronizes its index with the result.
type CohortIndexer interface {
	// IndexCohort ensures the cohort index exists, crawls the cohort and
	// upserts every crawled document. A failed or timed-out crawl leaves
	// the index unchanged. Returns ECONFLICT if a crawl is already running.
	IndexCohort(ctx context.Context, cohort Cohort) (*IndexResult, error)
}

// IndexResult holds the outcome of IndexCohort.
type IndexResult struct {
	Run       *CrawlRun    `json:"run"`
	Documents []*Document  `json:"documents"`
	Failed    []FailedPage `json:"failed"`
	Report    *WriteReport `json:"report"`
}
