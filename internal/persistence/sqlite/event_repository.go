package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

const defaultEventListLimit = 10

// EventRepository implements persistence.EventRepository using SQLite.
type EventRepository struct {
	helper *QueryHelper
}

// NewEventRepository creates a SQLite-backed event repository.
func NewEventRepository(pool *ConnectionPool) *EventRepository {
	return &EventRepository{helper: NewQueryHelper(pool)}
}

// CreateEvent inserts a new event. A missing organizer surfaces as
// ErrForeignKeyViolation.
func (r *EventRepository) CreateEvent(ctx context.Context, event persistence.Event) error {
	if event.ID == "" || event.OrganizerID == "" {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO events (id, title, description, category, date, location, organizer_id, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		event.ID,
		event.Title,
		event.Description,
		event.Category,
		event.Date.UTC().Format(time.RFC3339),
		event.Location,
		event.OrganizerID,
		event.ImageURL,
		event.CreatedAt.UTC().Format(time.RFC3339),
		event.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetEvent retrieves an event by ID.
func (r *EventRepository) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	if id == "" {
		return persistence.Event{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, title, description, category, date, location, organizer_id, image_url, created_at, updated_at
		FROM events
		WHERE id = ?
	`

	var (
		event     persistence.Event
		date      string
		createdAt string
		updatedAt string
	)

	err := r.helper.QueryRow(ctx, query, id).Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Category,
		&date,
		&event.Location,
		&event.OrganizerID,
		&event.ImageURL,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.Event{}, persistence.ErrNotFound
		}
		return persistence.Event{}, mapError(err)
	}

	if err := parseEventTimes(&event, date, createdAt, updatedAt); err != nil {
		return persistence.Event{}, err
	}

	return event, nil
}

// ListEvents returns events newest first, optionally filtered by category.
// The result size is bounded by the filter limit, defaulting to 10.
func (r *EventRepository) ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultEventListLimit
	}

	query := `
		SELECT id, title, description, category, date, location, organizer_id, image_url, created_at, updated_at
		FROM events
	`
	args := make([]any, 0, 2)
	if filter.Category != "" {
		query += ` WHERE category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.helper.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var events []persistence.Event
	for rows.Next() {
		var (
			event     persistence.Event
			date      string
			createdAt string
			updatedAt string
		)
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.Category,
			&date,
			&event.Location,
			&event.OrganizerID,
			&event.ImageURL,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, mapError(err)
		}
		if err := parseEventTimes(&event, date, createdAt, updatedAt); err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}

	return events, nil
}

func parseEventTimes(event *persistence.Event, date, createdAt, updatedAt string) error {
	var err error
	if event.Date, err = time.Parse(time.RFC3339, date); err != nil {
		return fmt.Errorf("failed to parse date: %w", err)
	}
	if event.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return fmt.Errorf("failed to parse created_at: %w", err)
	}
	if event.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return fmt.Errorf("failed to parse updated_at: %w", err)
	}
	return nil
}
