package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

// EventLookup exposes the single-event read needed by the RSVP workflow.
type EventLookup interface {
	GetEvent(ctx context.Context, id string) (persistence.Event, error)
}

// RSVPStore captures the persistence operations needed for RSVPs. CreateRSVP
// must insert conditionally: when a record for the (user, event) pair already
// exists it returns persistence.ErrDuplicate without changing anything.
type RSVPStore interface {
	CreateRSVP(ctx context.Context, rsvp persistence.RSVP) error
	GetRSVPByUserAndEvent(ctx context.Context, userID, eventID string) (persistence.RSVP, error)
}

// RSVPService runs the RSVP workflow. Checks run in a fixed order so a
// request failing for several reasons always reports the same one: missing
// input, then identifier format, then event existence, then duplication.
type RSVPService struct {
	events      EventLookup
	rsvps       RSVPStore
	invalidate  func(eventID string)
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewRSVPService constructs an RSVPService with the provided dependencies.
// invalidate, if non-nil, is called after each successful RSVP with the
// affected event ID.
func NewRSVPService(events EventLookup, rsvps RSVPStore, invalidate func(eventID string), idGenerator func() string, now func() time.Time) *RSVPService {
	return NewRSVPServiceWithLogger(events, rsvps, invalidate, idGenerator, now, nil)
}

// NewRSVPServiceWithLogger constructs an RSVPService with a specified logger.
func NewRSVPServiceWithLogger(events EventLookup, rsvps RSVPStore, invalidate func(eventID string), idGenerator func() string, now func() time.Time, logger *slog.Logger) *RSVPService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &RSVPService{
		events:      events,
		rsvps:       rsvps,
		invalidate:  invalidate,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *RSVPService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RSVPService", operation, attrs...)
}

// CreateRSVP records the caller's attendance for an event. At most one RSVP
// ever exists per (user, event) pair: the storage level unique constraint
// decides races, so two concurrent requests yield one record and one
// ErrAlreadyRSVPed.
func (s *RSVPService) CreateRSVP(ctx context.Context, params CreateRSVPParams) (rsvp RSVP, err error) {
	if s == nil {
		err = fmt.Errorf("RSVPService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event lookup not configured")
		return
	}
	if s.rsvps == nil {
		err = fmt.Errorf("rsvp store not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRSVP",
		"user_id", params.Identity.UserID,
		"event_id", params.EventID,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "rsvp failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("rsvp_id", rsvp.ID).InfoContext(ctx, "rsvp recorded")
	}()

	if params.EventID == "" || params.Identity.UserID == "" {
		err = ErrEventAndAuthRequired
		return
	}

	if err = ValidateEventID(params.EventID); err != nil {
		return
	}

	if _, err = s.events.GetEvent(ctx, params.EventID); err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	// Cheap pre-check for the common repeat-click case. It is advisory
	// only; the conditional insert below is what guarantees uniqueness.
	if _, lookupErr := s.rsvps.GetRSVPByUserAndEvent(ctx, params.Identity.UserID, params.EventID); lookupErr == nil {
		err = ErrAlreadyRSVPed
		return
	} else if !errors.Is(lookupErr, persistence.ErrNotFound) {
		err = lookupErr
		return
	}

	record := persistence.RSVP{
		ID:        s.idGenerator(),
		UserID:    params.Identity.UserID,
		EventID:   params.EventID,
		Status:    RSVPStatusAccepted,
		CreatedAt: s.now(),
	}

	if err = s.rsvps.CreateRSVP(ctx, record); err != nil {
		switch {
		case errors.Is(err, persistence.ErrDuplicate):
			err = ErrAlreadyRSVPed
		case errors.Is(err, persistence.ErrForeignKeyViolation):
			// The event existed moments ago; it, or the account, is gone now.
			err = ErrNotFound
		}
		return
	}

	if s.invalidate != nil {
		s.invalidate(params.EventID)
	}

	rsvp = rsvpFromRecord(record)
	return
}
