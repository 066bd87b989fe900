package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/campus-events/internal/persistence"
)

// EventStore captures the persistence operations needed for events.
type EventStore interface {
	CreateEvent(ctx context.Context, event persistence.Event) error
	GetEvent(ctx context.Context, id string) (persistence.Event, error)
	ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error)
}

// RSVPCounter exposes the attendee count lookup for an event.
type RSVPCounter interface {
	CountRSVPsForEvent(ctx context.Context, eventID string) (int, error)
}

const maxEventListLimit = 100

// EventService handles event creation, detail reads, and listing.
type EventService struct {
	events      EventStore
	users       UserStore
	rsvps       RSVPCounter
	cache       *eventCache
	idGenerator func() string
	now         func() time.Time
	listLimit   int
	logger      *slog.Logger
}

// NewEventService constructs an EventService with the provided dependencies.
// listLimit is the listing size applied when callers do not request one.
func NewEventService(events EventStore, users UserStore, rsvps RSVPCounter, idGenerator func() string, now func() time.Time, listLimit int) *EventService {
	return NewEventServiceWithLogger(events, users, rsvps, idGenerator, now, listLimit, nil)
}

// NewEventServiceWithLogger constructs an EventService with a specified logger.
func NewEventServiceWithLogger(events EventStore, users UserStore, rsvps RSVPCounter, idGenerator func() string, now func() time.Time, listLimit int, logger *slog.Logger) *EventService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	if listLimit <= 0 {
		listLimit = 10
	}
	return &EventService{
		events:      events,
		users:       users,
		rsvps:       rsvps,
		cache:       newEventCache(5*time.Second, 256, now),
		idGenerator: idGenerator,
		now:         now,
		listLimit:   listLimit,
		logger:      defaultLogger(logger),
	}
}

func (s *EventService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EventService", operation, attrs...)
}

// ValidateEventID checks an event identifier for syntactic validity without
// touching the store.
func ValidateEventID(id string) error {
	if uuid.Validate(id) != nil {
		return ErrInvalidEventID
	}
	return nil
}

// CreateEvent validates input and persists a new event organized by the caller.
func (s *EventService) CreateEvent(ctx context.Context, params CreateEventParams) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event store not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateEvent", "organizer_id", params.Identity.UserID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "event creation failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("event_id", event.ID).InfoContext(ctx, "event created")
	}()

	if params.Identity.UserID == "" {
		err = ErrUnauthenticated
		return
	}

	normalized := normalizeEventInput(params.Input)
	if vErr := validateEventInput(normalized); vErr.HasErrors() {
		err = vErr
		return
	}

	if s.users != nil {
		if _, err = s.users.GetUser(ctx, params.Identity.UserID); err != nil {
			if errors.Is(err, persistence.ErrNotFound) {
				err = ErrUnauthenticated
			}
			return
		}
	}

	now := s.now()
	record := persistence.Event{
		ID:          s.idGenerator(),
		Title:       normalized.Title,
		Description: normalized.Description,
		Category:    normalized.Category,
		Date:        normalized.Date,
		Location:    normalized.Location,
		OrganizerID: params.Identity.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if normalized.ImageURL != "" {
		imageURL := normalized.ImageURL
		record.ImageURL = &imageURL
	}

	if err = s.events.CreateEvent(ctx, record); err != nil {
		if errors.Is(err, persistence.ErrForeignKeyViolation) {
			err = ErrUnauthenticated
		}
		return
	}

	event = eventFromRecord(record)
	return
}

// GetEvent returns a single event with its current attendee count. The
// identifier is validated before any store access.
func (s *EventService) GetEvent(ctx context.Context, eventID string) (event Event, err error) {
	if s == nil {
		err = fmt.Errorf("EventService is nil")
		return
	}
	if s.events == nil {
		err = fmt.Errorf("event store not configured")
		return
	}

	logger := s.loggerWith(ctx, "GetEvent", "event_id", eventID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "event read failed", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if err = ValidateEventID(eventID); err != nil {
		return
	}

	if cached, ok := s.cache.Get(eventID); ok {
		event = cached
		return
	}

	record, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrNotFound
		}
		return
	}

	event = eventFromRecord(record)
	if s.rsvps != nil {
		event.AttendeeCount, err = s.rsvps.CountRSVPsForEvent(ctx, eventID)
		if err != nil {
			event = Event{}
			return
		}
	}

	s.cache.Store(event)
	return
}

// ListEvents returns recent events, newest first, optionally filtered by
// category.
func (s *EventService) ListEvents(ctx context.Context, params ListEventsParams) ([]Event, error) {
	if s == nil {
		return nil, fmt.Errorf("EventService is nil")
	}
	if s.events == nil {
		return nil, fmt.Errorf("event store not configured")
	}

	if params.Category != "" && !validCategory(params.Category) {
		vErr := &ValidationError{}
		vErr.add("category", "category is invalid")
		return nil, vErr
	}

	limit := params.Limit
	if limit <= 0 {
		limit = s.listLimit
	}
	if limit > maxEventListLimit {
		limit = maxEventListLimit
	}

	records, err := s.events.ListEvents(ctx, persistence.EventFilter{
		Category: params.Category,
		Limit:    limit,
	})
	if err != nil {
		s.loggerWith(ctx, "ListEvents").ErrorContext(ctx, "event listing failed", "error", err, "error_kind", ErrorKind(err))
		return nil, err
	}

	events := make([]Event, len(records))
	for i, record := range records {
		events[i] = eventFromRecord(record)
	}
	return events, nil
}

// InvalidateEvent drops a cached event after its attendee count changes.
func (s *EventService) InvalidateEvent(eventID string) {
	if s == nil {
		return
	}
	s.cache.Invalidate(eventID)
}

func normalizeEventInput(input EventInput) EventInput {
	category := trimLower(input.Category)
	if category == "" {
		category = CategoryUnlisted
	}
	return EventInput{
		Title:       trim(input.Title),
		Description: trim(input.Description),
		Category:    category,
		Date:        input.Date,
		Location:    trim(input.Location),
		ImageURL:    trim(input.ImageURL),
	}
}

func validateEventInput(input EventInput) *ValidationError {
	vErr := &ValidationError{}

	if input.Title == "" {
		vErr.add("title", "title is required")
	}
	if input.Description == "" {
		vErr.add("description", "description is required")
	}
	if input.Location == "" {
		vErr.add("location", "location is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	if !validCategory(input.Category) {
		vErr.add("category", "category is invalid")
	}

	return vErr
}
