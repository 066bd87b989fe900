package testfixtures

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/example/campus-events/internal/persistence"
)

// MemoryStore is an in-memory implementation of the persistence repositories
// for service level tests. It mirrors the storage guarantees the SQLite layer
// provides: unique emails, referential checks, and the conditional RSVP
// insert that refuses a second record for the same (user, event) pair.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]persistence.User
	events map[string]persistence.Event
	rsvps  map[string]persistence.RSVP
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]persistence.User),
		events: make(map[string]persistence.Event),
		rsvps:  make(map[string]persistence.RSVP),
	}
}

// CreateUser persists a user, enforcing ID and email uniqueness.
func (s *MemoryStore) CreateUser(ctx context.Context, user persistence.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return persistence.ErrDuplicate
	}
	email := strings.ToLower(strings.TrimSpace(user.Email))
	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, email) {
			return persistence.ErrDuplicate
		}
	}
	user.Email = email
	s.users[user.ID] = user
	return nil
}

// GetUser fetches a user by ID.
func (s *MemoryStore) GetUser(ctx context.Context, id string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return persistence.User{}, persistence.ErrNotFound
	}
	return user, nil
}

// GetUserByEmail fetches a user by email, case-insensitively.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, strings.TrimSpace(email)) {
			return user, nil
		}
	}
	return persistence.User{}, persistence.ErrNotFound
}

// CreateEvent persists an event after checking the organizer exists.
func (s *MemoryStore) CreateEvent(ctx context.Context, event persistence.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return persistence.ErrDuplicate
	}
	if _, ok := s.users[event.OrganizerID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	s.events[event.ID] = event
	return nil
}

// GetEvent fetches an event by ID.
func (s *MemoryStore) GetEvent(ctx context.Context, id string) (persistence.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return persistence.Event{}, persistence.ErrNotFound
	}
	return event, nil
}

// ListEvents returns events newest first, optionally filtered by category.
func (s *MemoryStore) ListEvents(ctx context.Context, filter persistence.EventFilter) ([]persistence.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := make([]persistence.Event, 0, len(s.events))
	for _, event := range s.events {
		if filter.Category != "" && event.Category != filter.Category {
			continue
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].CreatedAt.Equal(events[j].CreatedAt) {
			return events[i].ID > events[j].ID
		}
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	if filter.Limit > 0 && len(events) > filter.Limit {
		events = events[:filter.Limit]
	}
	return events, nil
}

// CreateRSVP inserts conditionally: when a record for the (user, event) pair
// already exists it returns persistence.ErrDuplicate without changing
// anything. The check and insert run under one lock, matching the atomicity
// of the SQLite conditional insert.
func (s *MemoryStore) CreateRSVP(ctx context.Context, rsvp persistence.RSVP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[rsvp.UserID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	if _, ok := s.events[rsvp.EventID]; !ok {
		return persistence.ErrForeignKeyViolation
	}
	for _, existing := range s.rsvps {
		if existing.UserID == rsvp.UserID && existing.EventID == rsvp.EventID {
			return persistence.ErrDuplicate
		}
	}
	s.rsvps[rsvp.ID] = rsvp
	return nil
}

// GetRSVPByUserAndEvent fetches the RSVP for a (user, event) pair.
func (s *MemoryStore) GetRSVPByUserAndEvent(ctx context.Context, userID, eventID string) (persistence.RSVP, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rsvp := range s.rsvps {
		if rsvp.UserID == userID && rsvp.EventID == eventID {
			return rsvp, nil
		}
	}
	return persistence.RSVP{}, persistence.ErrNotFound
}

// CountRSVPsForEvent counts the RSVPs recorded for an event.
func (s *MemoryStore) CountRSVPsForEvent(ctx context.Context, eventID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rsvp := range s.rsvps {
		if rsvp.EventID == eventID {
			count++
		}
	}
	return count, nil
}

// PairCount reports how many RSVP records exist for a (user, event) pair.
// Tests use it to assert that concurrent requests produced exactly one.
func (s *MemoryStore) PairCount(userID, eventID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rsvp := range s.rsvps {
		if rsvp.UserID == userID && rsvp.EventID == eventID {
			count++
		}
	}
	return count
}

// SeedUser inserts a user record directly, bypassing validation.
func (s *MemoryStore) SeedUser(user persistence.User) {
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
}

// SeedEvent inserts an event record directly, bypassing referential checks.
func (s *MemoryStore) SeedEvent(event persistence.Event) {
	s.mu.Lock()
	s.events[event.ID] = event
	s.mu.Unlock()
}

// SeedRSVP inserts an RSVP record directly, bypassing referential checks.
func (s *MemoryStore) SeedRSVP(rsvp persistence.RSVP) {
	s.mu.Lock()
	s.rsvps[rsvp.ID] = rsvp
	s.mu.Unlock()
}
