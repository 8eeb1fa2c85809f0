package leetmommy

import "context"

// CohortCrawler crawls the lecture pages of a cohort.
type CohortCrawler interface {
	// Crawl fetches the cohort's listing page and every lecture page it
	// links to, and returns one document per successfully fetched page.
	// It blocks until the crawl completes or its time bound elapses; on
	// timeout it returns an ETIMEOUT error and no documents.
	// Document order is not stable across runs.
	Crawl(ctx context.Context, cohort Cohort) (*CrawlResult, error)
}

// CrawlResult holds the outcome of one crawl.
type CrawlResult struct {
	Documents []*Document  `json:"documents"`
	Failed    []FailedPage `json:"failed"`
}

// FailedPage records a lecture page that could not be fetched.
type FailedPage struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// CrawlProgress reports progress during page fetching.
type CrawlProgress struct {
	URL       string
	Completed int
	Total     int
	Error     error
}

// CrawlProgressFunc is called as pages are processed.
type CrawlProgressFunc func(CrawlProgress)
