package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventlens/eventlens/internal/database"
)

// PhotoRepository provides PostgreSQL-backed photo storage.
type PhotoRepository struct {
	pool *Pool
}

// NewPhotoRepository creates a new PostgreSQL photo repository.
func NewPhotoRepository(pool *Pool) *PhotoRepository {
	return &PhotoRepository{pool: pool}
}

const photoColumns = `uid, event_uid, original_name, path, COALESCE(caption, ''),
       faces_processed, face_count, created_at`

// GetPhoto retrieves a photo by UID.
func (r *PhotoRepository) GetPhoto(ctx context.Context, uid string) (*database.Photo, error) {
	query := `SELECT ` + photoColumns + ` FROM photos WHERE uid = $1`

	var p database.Photo
	err := r.pool.QueryRow(ctx, query, uid).Scan(
		&p.UID, &p.EventUID, &p.OriginalName, &p.Path, &p.Caption,
		&p.FacesProcessed, &p.FaceCount, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("photo not found: %s", uid)
	}
	if err != nil {
		return nil, fmt.Errorf("query photo: %w", err)
	}
	return &p, nil
}

// ListPhotosByEvent returns all photos for an event ordered by creation time.
func (r *PhotoRepository) ListPhotosByEvent(ctx context.Context, eventUID string) ([]database.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE event_uid = $1
		ORDER BY created_at, uid
	`

	rows, err := r.pool.Query(ctx, query, eventUID)
	if err != nil {
		return nil, fmt.Errorf("query photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

// ListUnprocessed returns photos whose faces have not been processed yet.
// An empty eventUID means all events; limit 0 means no limit.
func (r *PhotoRepository) ListUnprocessed(ctx context.Context, eventUID string, limit int) ([]database.Photo, error) {
	query := `
		SELECT ` + photoColumns + `
		FROM photos
		WHERE faces_processed = FALSE
	`
	args := []any{}
	if eventUID != "" {
		query += " AND event_uid = $1"
		args = append(args, eventUID)
	}
	query += " ORDER BY created_at, uid"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query unprocessed photos: %w", err)
	}
	defer rows.Close()

	return scanPhotos(rows)
}

// CountPhotos returns the total number of photos.
func (r *PhotoRepository) CountPhotos(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM photos").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return count, nil
}

// CountProcessed returns the number of photos with faces processed.
func (r *PhotoRepository) CountProcessed(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM photos WHERE faces_processed = TRUE").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count processed photos: %w", err)
	}
	return count, nil
}

// CreatePhoto stores a new photo.
func (r *PhotoRepository) CreatePhoto(ctx context.Context, photo *database.Photo) error {
	query := `
		INSERT INTO photos (uid, event_uid, original_name, path, caption, faces_processed, face_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var caption sql.NullString
	if photo.Caption != "" {
		caption = sql.NullString{String: photo.Caption, Valid: true}
	}

	if _, err := r.pool.Exec(ctx, query,
		photo.UID, photo.EventUID, photo.OriginalName, photo.Path, caption,
		photo.FacesProcessed, photo.FaceCount,
	); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// UpdateCaption sets the caption for a photo.
func (r *PhotoRepository) UpdateCaption(ctx context.Context, uid, caption string) error {
	result, err := r.pool.Exec(ctx, "UPDATE photos SET caption = $2 WHERE uid = $1", uid, caption)
	if err != nil {
		return fmt.Errorf("update caption: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update caption rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("photo not found: %s", uid)
	}
	return nil
}

func scanPhotos(rows *sql.Rows) ([]database.Photo, error) {
	var photos []database.Photo
	for rows.Next() {
		var p database.Photo
		if err := rows.Scan(
			&p.UID, &p.EventUID, &p.OriginalName, &p.Path, &p.Caption,
			&p.FacesProcessed, &p.FaceCount, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan photo: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// Verify interface compliance.
var _ database.PhotoReader = (*PhotoRepository)(nil)
var _ database.PhotoWriter = (*PhotoRepository)(nil)
