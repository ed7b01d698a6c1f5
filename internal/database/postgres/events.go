package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eventlens/eventlens/internal/database"
)

// EventRepository provides PostgreSQL-backed event storage.
type EventRepository struct {
	pool *Pool
}

// NewEventRepository creates a new PostgreSQL event repository.
func NewEventRepository(pool *Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `uid, name, slug, event_date, created_at`

// GetEvent retrieves an event by UID.
func (r *EventRepository) GetEvent(ctx context.Context, uid string) (*database.Event, error) {
	return r.getEvent(ctx, "uid", uid)
}

// GetEventBySlug retrieves an event by its URL slug.
func (r *EventRepository) GetEventBySlug(ctx context.Context, slug string) (*database.Event, error) {
	return r.getEvent(ctx, "slug", slug)
}

func (r *EventRepository) getEvent(ctx context.Context, column, value string) (*database.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE ` + column + ` = $1`

	var e database.Event
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&e.UID, &e.Name, &e.Slug, &e.EventDate, &e.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event not found: %s", value)
	}
	if err != nil {
		return nil, fmt.Errorf("query event: %w", err)
	}
	return &e, nil
}

// ListEvents returns all events ordered by event date, newest first.
func (r *EventRepository) ListEvents(ctx context.Context) ([]database.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY event_date DESC, uid`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []database.Event
	for rows.Next() {
		var e database.Event
		if err := rows.Scan(&e.UID, &e.Name, &e.Slug, &e.EventDate, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// CreateEvent stores a new event.
func (r *EventRepository) CreateEvent(ctx context.Context, event *database.Event) error {
	query := `
		INSERT INTO events (uid, name, slug, event_date)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.pool.Exec(ctx, query, event.UID, event.Name, event.Slug, event.EventDate); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Verify interface compliance.
var _ database.EventReader = (*EventRepository)(nil)
var _ database.EventWriter = (*EventRepository)(nil)
