package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

// RSVPRepository implements persistence.RSVPRepository using SQLite.
type RSVPRepository struct {
	helper *QueryHelper
}

// NewRSVPRepository creates a SQLite-backed RSVP repository.
func NewRSVPRepository(pool *ConnectionPool) *RSVPRepository {
	return &RSVPRepository{helper: NewQueryHelper(pool)}
}

// CreateRSVP inserts an RSVP only if no record exists for the (user, event)
// pair. The conflict clause makes the duplicate check and the insert a single
// atomic statement, so concurrent attempts for the same pair persist at most
// one row; the losing attempt observes ErrDuplicate.
func (r *RSVPRepository) CreateRSVP(ctx context.Context, rsvp persistence.RSVP) error {
	if rsvp.ID == "" || rsvp.UserID == "" || rsvp.EventID == "" {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO rsvps (id, user_id, event_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, event_id) DO NOTHING
	`

	result, err := r.helper.Exec(ctx, query,
		rsvp.ID,
		rsvp.UserID,
		rsvp.EventID,
		rsvp.Status,
		rsvp.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return persistence.ErrDuplicate
	}

	return nil
}

// GetRSVPByUserAndEvent retrieves the RSVP for a (user, event) pair. Absence
// is reported as ErrNotFound, never as a query failure.
func (r *RSVPRepository) GetRSVPByUserAndEvent(ctx context.Context, userID, eventID string) (persistence.RSVP, error) {
	if userID == "" || eventID == "" {
		return persistence.RSVP{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, user_id, event_id, status, created_at
		FROM rsvps
		WHERE user_id = ? AND event_id = ?
	`

	var (
		rsvp      persistence.RSVP
		createdAt string
	)

	err := r.helper.QueryRow(ctx, query, userID, eventID).Scan(
		&rsvp.ID,
		&rsvp.UserID,
		&rsvp.EventID,
		&rsvp.Status,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.RSVP{}, persistence.ErrNotFound
		}
		return persistence.RSVP{}, mapError(err)
	}

	if rsvp.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.RSVP{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return rsvp, nil
}

// CountRSVPsForEvent returns the number of RSVP records for an event.
func (r *RSVPRepository) CountRSVPsForEvent(ctx context.Context, eventID string) (int, error) {
	if eventID == "" {
		return 0, nil
	}

	const query = `SELECT COUNT(*) FROM rsvps WHERE event_id = ?`

	var count int
	if err := r.helper.QueryRow(ctx, query, eventID).Scan(&count); err != nil {
		return 0, mapError(err)
	}

	return count, nil
}
