package crawl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.CohortIndexer = (*Indexer)(nil)

// Indexer crawls cohorts and upserts the crawled documents into the cohort
// index. Only one crawl runs at a time per Indexer.
type Indexer struct {
	Crawler leetmommy.CohortCrawler
	Indexes leetmommy.IndexService
	Writer  leetmommy.DocumentWriter

	// Runs and Hashes are optional; when nil no crawl history is kept.
	Runs   leetmommy.CrawlRunService
	Hashes leetmommy.PageHashService

	// Schema is used when the cohort index does not exist yet.
	// The zero value means leetmommy.DefaultIndexSchema().
	Schema leetmommy.IndexSchema

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu sync.Mutex
}

// IndexCohort creates the cohort index if needed, crawls the cohort and
// upserts the documents. A crawl that fails or times out writes nothing.
func (x *Indexer) IndexCohort(ctx context.Context, cohort leetmommy.Cohort) (*leetmommy.IndexResult, error) {
	if !x.mu.TryLock() {
		return nil, leetmommy.Errorf(leetmommy.ECONFLICT, "a crawl is already in progress")
	}
	defer x.mu.Unlock()

	index := cohort.IndexName()
	run := &leetmommy.CrawlRun{
		Cohort:    cohort,
		StartedAt: x.now(),
	}

	schema := x.Schema
	if schema == (leetmommy.IndexSchema{}) {
		schema = leetmommy.DefaultIndexSchema()
	}
	if _, err := x.Indexes.CreateIfAbsent(ctx, index, schema); err != nil {
		return nil, x.fail(ctx, run, fmt.Errorf("ensure index %s: %w", index, err))
	}

	result, err := x.Crawler.Crawl(ctx, cohort)
	if err != nil {
		return nil, x.fail(ctx, run, err)
	}
	run.Documents = len(result.Documents)
	run.FailedPages = len(result.Failed)

	report, err := x.Writer.WriteDocuments(ctx, index, result.Documents)
	if err != nil {
		return nil, x.fail(ctx, run, fmt.Errorf("write documents to %s: %w", index, err))
	}

	run.Status = leetmommy.CrawlSucceeded
	run.FailedWrites = len(report.Failed)

	changed, err := x.trackChanges(ctx, cohort, result.Documents, report)
	if err != nil {
		run.Error = fmt.Sprintf("page hashes: %v", err)
	}
	run.Changed = changed

	if err := x.record(ctx, run); err != nil {
		return nil, err
	}

	return &leetmommy.IndexResult{
		Run:       run,
		Documents: result.Documents,
		Failed:    result.Failed,
		Report:    report,
	}, nil
}

// trackChanges compares document fingerprints to the stored ones, stores
// the new fingerprints and returns how many pages are new or changed.
// Documents whose upsert failed are left out.
func (x *Indexer) trackChanges(ctx context.Context, cohort leetmommy.Cohort, docs []*leetmommy.Document, report *leetmommy.WriteReport) (int, error) {
	if x.Hashes == nil {
		return 0, nil
	}

	failed := make(map[string]bool, len(report.Failed))
	for _, u := range report.FailedURLs() {
		failed[u] = true
	}

	previous, err := x.Hashes.FindPageHashes(ctx, cohort)
	if err != nil {
		return 0, err
	}

	hashes := make(map[string]string, len(docs))
	changed := 0
	for _, doc := range docs {
		if failed[doc.URL] {
			continue
		}
		hash := ComputeHash(doc)
		if previous[doc.URL] != hash {
			changed++
		}
		hashes[doc.URL] = hash
	}

	if err := x.Hashes.SavePageHashes(ctx, cohort, hashes); err != nil {
		return changed, err
	}
	return changed, nil
}

// fail records run as failed, or timed out for ETIMEOUT errors, and returns
// err. The run is recorded even if the caller's context is gone.
func (x *Indexer) fail(ctx context.Context, run *leetmommy.CrawlRun, err error) error {
	run.Status = leetmommy.CrawlFailed
	if leetmommy.ErrorCode(err) == leetmommy.ETIMEOUT {
		run.Status = leetmommy.CrawlTimedOut
	}
	run.Error = err.Error()
	if recErr := x.record(context.WithoutCancel(ctx), run); recErr != nil {
		return errors.Join(err, recErr)
	}
	return err
}

func (x *Indexer) record(ctx context.Context, run *leetmommy.CrawlRun) error {
	run.FinishedAt = x.now()
	if x.Runs == nil {
		return nil
	}
	if err := x.Runs.CreateCrawlRun(ctx, run); err != nil {
		return fmt.Errorf("record crawl run: %w", err)
	}
	return nil
}

func (x *Indexer) now() time.Time {
	if x.Now != nil {
		return x.Now()
	}
	return time.Now()
}
