// Package legacy reads events, photos and face encodings from the old
// MySQL-backed gallery so they can be imported into the current store.
package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool manages a MySQL connection pool for the legacy gallery.
type Pool struct {
	db *sql.DB
}

// NewPool creates a new MySQL connection pool.
func NewPool(dsn string) (*Pool, error) {
	if dsn == "" {
		return nil, errors.New("legacy database DSN is required")
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open legacy database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping legacy database: %w", err)
	}

	return &Pool{db: db}, nil
}

// Close closes the connection pool.
func (p *Pool) Close() error {
	if p.db != nil {
		if err := p.db.Close(); err != nil {
			return fmt.Errorf("closing database connection: %w", err)
		}
	}
	return nil
}

// Event is an event row from the legacy gallery.
type Event struct {
	ID        int64
	Name      string
	EventDate time.Time
}

// Photo is a photo row from the legacy gallery.
type Photo struct {
	ID           int64
	EventID      int64
	OriginalName string
	Path         string
}

// FaceRow is a stored face encoding from the legacy gallery. The encoding
// is the comma-separated decimal text format shared with the current store;
// the four ints are the face bounding box in source pixel coords.
type FaceRow struct {
	ID       int64
	PhotoID  int64
	Encoding string
	Top      int
	Right    int
	Bottom   int
	Left     int
}

// GetEvents returns all events from the legacy gallery.
func (p *Pool) GetEvents(ctx context.Context) ([]Event, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, name, date FROM gallery_event ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query legacy events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.EventDate); err != nil {
			return nil, fmt.Errorf("scan legacy event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy events: %w", err)
	}
	return events, nil
}

// GetPhotosByEvent returns all photos for a legacy event.
func (p *Pool) GetPhotosByEvent(ctx context.Context, eventID int64) ([]Photo, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, event_id, original_name, image
		FROM gallery_eventphoto
		WHERE event_id = ?
		ORDER BY id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("query legacy photos: %w", err)
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var ph Photo
		if err := rows.Scan(&ph.ID, &ph.EventID, &ph.OriginalName, &ph.Path); err != nil {
			return nil, fmt.Errorf("scan legacy photo: %w", err)
		}
		photos = append(photos, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy photos: %w", err)
	}
	return photos, nil
}

// GetFacesByPhoto returns the stored face encodings for a legacy photo.
func (p *Pool) GetFacesByPhoto(ctx context.Context, photoID int64) ([]FaceRow, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT id, photo_id, encoding, top, `right`, bottom, `left` FROM gallery_photoface WHERE photo_id = ? ORDER BY id", photoID)
	if err != nil {
		return nil, fmt.Errorf("query legacy faces: %w", err)
	}
	defer rows.Close()

	var faces []FaceRow
	for rows.Next() {
		var f FaceRow
		if err := rows.Scan(&f.ID, &f.PhotoID, &f.Encoding, &f.Top, &f.Right, &f.Bottom, &f.Left); err != nil {
			return nil, fmt.Errorf("scan legacy face: %w", err)
		}
		faces = append(faces, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate legacy faces: %w", err)
	}
	return faces, nil
}
