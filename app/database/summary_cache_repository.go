package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// SummaryCacheRepository handles database operations for cached summaries
type SummaryCacheRepository struct {
	db *DB
}

// NewSummaryCacheRepository creates a new summary cache repository
func NewSummaryCacheRepository(db *DB) *SummaryCacheRepository {
	return &SummaryCacheRepository{db: db}
}

// GetSummary returns the cached payload for key when one exists that is
// newer than maxAge.
func (r *SummaryCacheRepository) GetSummary(ctx context.Context, key string, maxAge time.Duration) (string, bool, error) {
	cutoff := time.Now().UTC().Add(-maxAge)

	var summary string
	err := r.db.QueryRowContext(ctx, `
		SELECT summary FROM summary_cache
		WHERE cache_key = ? AND created_at > ?
	`, key, cutoff).Scan(&summary)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cached summary: %w", err)
	}

	return summary, true, nil
}

// SaveSummary stores the payload for key, replacing any previous entry
func (r *SummaryCacheRepository) SaveSummary(ctx context.Context, key, summary string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO summary_cache (cache_key, summary, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			summary = excluded.summary,
			created_at = excluded.created_at
	`, key, summary, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("failed to save cached summary: %w", err)
	}

	return nil
}
