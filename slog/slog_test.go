package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/leetmommy/leetmommy"
	"github.com/leetmommy/leetmommy/mock"
	lmslog "github.com/leetmommy/leetmommy/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*leetmommy.Page, error) {
				return &leetmommy.Page{URL: url, HTML: "<html>content</html>"}, nil
			},
		}

		fetcher := lmslog.NewLoggingFetcher(inner, logger)
		page, err := fetcher.Fetch(context.Background(), "https://example.com/r13/lectures/")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", page.HTML)
		output := buf.String()
		assert.Contains(t, output, "msg=fetch")
		assert.Contains(t, output, "url=https://example.com/r13/lectures/")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.Fetcher{
			FetchFn: func(_ context.Context, _ string) (*leetmommy.Page, error) {
				return nil, errors.New("network error")
			},
		}

		fetcher := lmslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/r13/lectures/")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "bytes=0")
		assert.Contains(t, buf.String(), `err="network error"`)
	})

	t.Run("close delegates to inner fetcher", func(t *testing.T) {
		t.Parallel()

		logger, _ := newLogger()
		closeCalled := false
		inner := &mock.Fetcher{
			CloseFn: func() error {
				closeCalled = true
				return nil
			},
		}

		require.NoError(t, lmslog.NewLoggingFetcher(inner, logger).Close())
		assert.True(t, closeCalled)
	})
}

func TestLoggingCrawler_Crawl(t *testing.T) {
	t.Parallel()

	t.Run("logs document and failure counts", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.CohortCrawler{
			CrawlFn: func(_ context.Context, _ leetmommy.Cohort) (*leetmommy.CrawlResult, error) {
				return &leetmommy.CrawlResult{
					Documents: []*leetmommy.Document{leetmommy.NewDocument("/a"), leetmommy.NewDocument("/b")},
					Failed:    []leetmommy.FailedPage{{URL: "/c", Error: "HTTP 500"}},
				}, nil
			},
		}

		_, err := lmslog.NewLoggingCrawler(inner, logger).Crawl(context.Background(), "r13")

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "msg=crawl")
		assert.Contains(t, output, "cohort=r13")
		assert.Contains(t, output, "documents=2")
		assert.Contains(t, output, "failed=1")
	})

	t.Run("logs timeout error", func(t *testing.T) {
		t.Parallel()

		logger, buf := newLogger()
		inner := &mock.CohortCrawler{
			CrawlFn: func(_ context.Context, _ leetmommy.Cohort) (*leetmommy.CrawlResult, error) {
				return nil, leetmommy.Errorf(leetmommy.ETIMEOUT, "crawl timed out")
			},
		}

		_, err := lmslog.NewLoggingCrawler(inner, logger).Crawl(context.Background(), "r13")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "documents=0")
		assert.Contains(t, buf.String(), "code=timeout")
	})
}

func TestLoggingIndexService(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.IndexService{
		ExistsFn: func(_ context.Context, _ string) (bool, error) { return true, nil },
		CreateIfAbsentFn: func(_ context.Context, _ string, _ leetmommy.IndexSchema) (bool, error) {
			return true, nil
		},
		RecreateFn: func(_ context.Context, _ string, _ leetmommy.IndexSchema) error { return nil },
		DeleteFn: func(_ context.Context, index string) error {
			return leetmommy.Errorf(leetmommy.ENOTFOUND, "index %q not found", index)
		},
	}
	s := lmslog.NewLoggingIndexService(inner, logger)
	ctx := context.Background()

	exists, err := s.Exists(ctx, "r13")
	require.NoError(t, err)
	assert.True(t, exists)

	created, err := s.CreateIfAbsent(ctx, "r13", leetmommy.DefaultIndexSchema())
	require.NoError(t, err)
	assert.True(t, created)

	require.NoError(t, s.Recreate(ctx, "r13", leetmommy.DefaultIndexSchema()))

	err = s.Delete(ctx, "r99")
	assert.Equal(t, leetmommy.ENOTFOUND, leetmommy.ErrorCode(err))

	output := buf.String()
	assert.Contains(t, output, `msg="index exists" index=r13 exists=true`)
	assert.Contains(t, output, `msg="index create" index=r13 created=true`)
	assert.Contains(t, output, `msg="index recreate" index=r13`)
	assert.Contains(t, output, `msg="index delete" index=r99`)
}

func TestLoggingDocumentWriter_WriteDocuments(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.DocumentWriter{
		WriteDocumentsFn: func(_ context.Context, _ string, _ []*leetmommy.Document) (*leetmommy.WriteReport, error) {
			return &leetmommy.WriteReport{
				Written: 1,
				Failed:  []leetmommy.WriteFailure{{URL: "/b", Status: 400, Reason: "mapper_parsing_exception"}},
			}, nil
		},
	}

	report, err := lmslog.NewLoggingDocumentWriter(inner, logger).WriteDocuments(context.Background(), "r13",
		[]*leetmommy.Document{leetmommy.NewDocument("/a"), leetmommy.NewDocument("/b")})

	require.NoError(t, err)
	assert.Equal(t, 1, report.Written)
	output := buf.String()
	assert.Contains(t, output, `level=WARN msg="write rejected" index=r13 url=/b status=400`)
	assert.Contains(t, output, "count=2 written=1 failed=1")
}

func TestLoggingSearchService(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.SearchService{
		SearchFn: func(_ context.Context, _ string, _ string) ([]*leetmommy.Document, error) {
			return []*leetmommy.Document{leetmommy.NewDocument("/a")}, nil
		},
		AutocompleteFn: func(_ context.Context, _ string, _ string) ([]*leetmommy.Match, error) {
			return []*leetmommy.Match{{ID: "/a"}, {ID: "/b"}}, nil
		},
	}
	s := lmslog.NewLoggingSearchService(inner, logger)

	_, err := s.Search(context.Background(), "r13", "for loops")
	require.NoError(t, err)
	_, err = s.Autocomplete(context.Background(), "r13", "Intr")
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `msg=search index=r13 query="for loops" count=1`)
	assert.Contains(t, output, `msg=autocomplete index=r13 text=Intr count=2`)
}

func TestLoggingIndexer_IndexCohort(t *testing.T) {
	t.Parallel()

	logger, buf := newLogger()
	inner := &mock.CohortIndexer{
		IndexCohortFn: func(_ context.Context, cohort leetmommy.Cohort) (*leetmommy.IndexResult, error) {
			return &leetmommy.IndexResult{
				Run: &leetmommy.CrawlRun{ID: "run-1", Cohort: cohort, Documents: 4, Changed: 1},
			}, nil
		},
	}

	_, err := lmslog.NewLoggingIndexer(inner, logger).IndexCohort(context.Background(), "r13")

	require.NoError(t, err)
	output := buf.String()
	assert.Contains(t, output, `msg="index cohort" cohort=r13`)
	assert.Contains(t, output, "run=run-1 documents=4 changed=1")
}
