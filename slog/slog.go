// Package slog provides logging decorators for leetmommy services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/leetmommy/leetmommy"
)

// Ensure decorators implement their interfaces.
var (
	_ leetmommy.Fetcher        = (*LoggingFetcher)(nil)
	_ leetmommy.CohortCrawler  = (*LoggingCrawler)(nil)
	_ leetmommy.IndexService   = (*LoggingIndexService)(nil)
	_ leetmommy.DocumentWriter = (*LoggingDocumentWriter)(nil)
	_ leetmommy.SearchService  = (*LoggingSearchService)(nil)
	_ leetmommy.CohortIndexer  = (*LoggingIndexer)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   leetmommy.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next leetmommy.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (page *leetmommy.Page, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if page != nil {
			bytes = len(page.HTML)
		}
		f.logger.Info("fetch",
			"url", url,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingCrawler wraps a CohortCrawler with debug logging.
type LoggingCrawler struct {
	next   leetmommy.CohortCrawler
	logger *slog.Logger
}

// NewLoggingCrawler creates a new LoggingCrawler.
func NewLoggingCrawler(next leetmommy.CohortCrawler, logger *slog.Logger) *LoggingCrawler {
	return &LoggingCrawler{next: next, logger: logger}
}

// Crawl delegates to the wrapped crawler and logs the outcome.
func (c *LoggingCrawler) Crawl(ctx context.Context, cohort leetmommy.Cohort) (result *leetmommy.CrawlResult, err error) {
	defer func(begin time.Time) {
		docs, failed := 0, 0
		if result != nil {
			docs, failed = len(result.Documents), len(result.Failed)
		}
		c.logger.Info("crawl",
			"cohort", cohort,
			"documents", docs,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Crawl(ctx, cohort)
}

// LoggingIndexService wraps an IndexService with debug logging.
type LoggingIndexService struct {
	next   leetmommy.IndexService
	logger *slog.Logger
}

// NewLoggingIndexService creates a new LoggingIndexService.
func NewLoggingIndexService(next leetmommy.IndexService, logger *slog.Logger) *LoggingIndexService {
	return &LoggingIndexService{next: next, logger: logger}
}

func (s *LoggingIndexService) Exists(ctx context.Context, index string) (exists bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index exists",
			"index", index,
			"exists", exists,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Exists(ctx, index)
}

func (s *LoggingIndexService) CreateIfAbsent(ctx context.Context, index string, schema leetmommy.IndexSchema) (created bool, err error) {
	defer func(begin time.Time) {
		s.logger.Info("index create",
			"index", index,
			"created", created,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateIfAbsent(ctx, index, schema)
}

func (s *LoggingIndexService) Recreate(ctx context.Context, index string, schema leetmommy.IndexSchema) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("index recreate",
			"index", index,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Recreate(ctx, index, schema)
}

func (s *LoggingIndexService) Delete(ctx context.Context, index string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("index delete",
			"index", index,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Delete(ctx, index)
}

// LoggingDocumentWriter wraps a DocumentWriter with debug logging.
type LoggingDocumentWriter struct {
	next   leetmommy.DocumentWriter
	logger *slog.Logger
}

// NewLoggingDocumentWriter creates a new LoggingDocumentWriter.
func NewLoggingDocumentWriter(next leetmommy.DocumentWriter, logger *slog.Logger) *LoggingDocumentWriter {
	return &LoggingDocumentWriter{next: next, logger: logger}
}

// WriteDocuments logs the batch size and per-document failures.
func (w *LoggingDocumentWriter) WriteDocuments(ctx context.Context, index string, docs []*leetmommy.Document) (report *leetmommy.WriteReport, err error) {
	defer func(begin time.Time) {
		written, failed := 0, 0
		if report != nil {
			written, failed = report.Written, len(report.Failed)
			for _, f := range report.Failed {
				w.logger.Warn("write rejected", "index", index, "url", f.URL, "status", f.Status, "reason", f.Reason)
			}
		}
		w.logger.Info("write documents",
			"index", index,
			"count", len(docs),
			"written", written,
			"failed", failed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteDocuments(ctx, index, docs)
}

// LoggingSearchService wraps a SearchService with debug logging.
type LoggingSearchService struct {
	next   leetmommy.SearchService
	logger *slog.Logger
}

// NewLoggingSearchService creates a new LoggingSearchService.
func NewLoggingSearchService(next leetmommy.SearchService, logger *slog.Logger) *LoggingSearchService {
	return &LoggingSearchService{next: next, logger: logger}
}

func (s *LoggingSearchService) Search(ctx context.Context, index string, query string) (docs []*leetmommy.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search",
			"index", index,
			"query", query,
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, index, query)
}

func (s *LoggingSearchService) Autocomplete(ctx context.Context, index string, text string) (matches []*leetmommy.Match, err error) {
	defer func(begin time.Time) {
		s.logger.Info("autocomplete",
			"index", index,
			"text", text,
			"count", len(matches),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Autocomplete(ctx, index, text)
}

// LoggingIndexer wraps a CohortIndexer and logs each crawl-and-index run.
type LoggingIndexer struct {
	next   leetmommy.CohortIndexer
	logger *slog.Logger
}

// NewLoggingIndexer creates a new LoggingIndexer.
func NewLoggingIndexer(next leetmommy.CohortIndexer, logger *slog.Logger) *LoggingIndexer {
	return &LoggingIndexer{next: next, logger: logger}
}

func (x *LoggingIndexer) IndexCohort(ctx context.Context, cohort leetmommy.Cohort) (result *leetmommy.IndexResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{"cohort", cohort, "duration", time.Since(begin), "err", err}
		if result != nil && result.Run != nil {
			attrs = append(attrs,
				"run", result.Run.ID,
				"documents", result.Run.Documents,
				"changed", result.Run.Changed,
			)
		}
		x.logger.Info("index cohort", attrs...)
	}(time.Now())
	return x.next.IndexCohort(ctx, cohort)
}
