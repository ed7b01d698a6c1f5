package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventlens/eventlens/internal/database"
)

// SearchRepository records selfie searches for usage statistics.
type SearchRepository struct {
	pool *Pool
}

// NewSearchRepository creates a new PostgreSQL search log repository.
func NewSearchRepository(pool *Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

// RecordSearch appends a search record.
func (r *SearchRepository) RecordSearch(ctx context.Context, rec *database.SearchRecord) error {
	query := `
		INSERT INTO searches (event_uid, tolerance, faces_found, match_count, duration_ms)
		VALUES ($1, $2, $3, $4, $5)
	`

	var eventUID sql.NullString
	if rec.EventUID != "" {
		eventUID = sql.NullString{String: rec.EventUID, Valid: true}
	}

	if _, err := r.pool.Exec(ctx, query,
		eventUID, rec.Tolerance, rec.FacesFound, rec.MatchCount, rec.DurationMS,
	); err != nil {
		return fmt.Errorf("insert search record: %w", err)
	}
	return nil
}

// CountSearches returns the number of recorded searches.
func (r *SearchRepository) CountSearches(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM searches").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count searches: %w", err)
	}
	return count, nil
}

// Verify interface compliance.
var _ database.SearchLogWriter = (*SearchRepository)(nil)
