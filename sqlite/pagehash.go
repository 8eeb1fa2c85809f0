package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/leetmommy/leetmommy"
)

var _ leetmommy.PageHashService = (*PageHashService)(nil)

// PageHashService implements leetmommy.PageHashService using SQLite.
type PageHashService struct {
	db *DB
}

// NewPageHashService creates a new PageHashService.
func NewPageHashService(db *DB) *PageHashService {
	return &PageHashService{db: db}
}

// FindPageHashes returns the stored fingerprints of the cohort's pages keyed by URL.
func (s *PageHashService) FindPageHashes(ctx context.Context, cohort leetmommy.Cohort) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT url, hash FROM page_hashes WHERE cohort = ?", string(cohort))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hashes := make(map[string]string)
	for rows.Next() {
		var url, hash string
		if err := rows.Scan(&url, &hash); err != nil {
			return nil, err
		}
		hashes[url] = hash
	}
	return hashes, rows.Err()
}

// SavePageHashes upserts fingerprints in a single transaction. Pages that
// are not in hashes keep their stored fingerprint.
func (s *PageHashService) SavePageHashes(ctx context.Context, cohort leetmommy.Cohort, hashes map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO page_hashes (cohort, url, hash, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cohort, url) DO UPDATE SET hash = excluded.hash, updated_at = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := formatTime(time.Now())
	for url, hash := range hashes {
		if _, err := stmt.ExecContext(ctx, string(cohort), url, hash, now); err != nil {
			return fmt.Errorf("save hash for %s: %w", url, err)
		}
	}

	return tx.Commit()
}
