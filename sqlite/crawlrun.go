package sqlite

import (
	"context"
	"strings"

	"github.com/leetmommy/leetmommy"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ leetmommy.CrawlRunService = (*CrawlRunService)(nil)

// CrawlRunService implements leetmommy.CrawlRunService using SQLite.
type CrawlRunService struct {
	db *DB
}

// NewCrawlRunService creates a new CrawlRunService.
func NewCrawlRunService(db *DB) *CrawlRunService {
	return &CrawlRunService{db: db}
}

// CreateCrawlRun stores a finished run and assigns its ID.
func (s *CrawlRunService) CreateCrawlRun(ctx context.Context, run *leetmommy.CrawlRun) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO crawl_runs (id, cohort, status, documents, failed_pages, failed_writes, changed, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Cohort), string(run.Status), run.Documents, run.FailedPages, run.FailedWrites,
		run.Changed, run.Error,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))

	return err
}

// FindCrawlRuns retrieves runs matching the filter, newest first.
func (s *CrawlRunService) FindCrawlRuns(ctx context.Context, filter leetmommy.CrawlRunFilter) ([]*leetmommy.CrawlRun, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, cohort, status, documents, failed_pages, failed_writes, changed, error, started_at, finished_at
		FROM crawl_runs WHERE 1=1`)

	if filter.Cohort != nil {
		query.WriteString(" AND cohort = ?")
		args = append(args, string(*filter.Cohort))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*leetmommy.CrawlRun{}
	for rows.Next() {
		var run leetmommy.CrawlRun
		var cohort, status, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &cohort, &status, &run.Documents, &run.FailedPages, &run.FailedWrites,
			&run.Changed, &run.Error, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.Cohort = leetmommy.Cohort(cohort)
		run.Status = leetmommy.CrawlStatus(status)

		if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
