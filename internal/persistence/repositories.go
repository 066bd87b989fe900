package persistence

import "context"

// UserRepository stores registered accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user User) error
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

// EventRepository stores hosted events.
type EventRepository interface {
	CreateEvent(ctx context.Context, event Event) error
	GetEvent(ctx context.Context, id string) (Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]Event, error)
}

// RSVPRepository stores attendance responses.
//
// CreateRSVP is a conditional insert: when a record for the same
// (user, event) pair already exists it returns ErrDuplicate without
// writing, so concurrent attempts for one pair persist at most one row.
type RSVPRepository interface {
	CreateRSVP(ctx context.Context, rsvp RSVP) error
	GetRSVPByUserAndEvent(ctx context.Context, userID, eventID string) (RSVP, error)
	CountRSVPsForEvent(ctx context.Context, eventID string) (int, error)
}
