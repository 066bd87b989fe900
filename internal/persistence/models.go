package persistence

import "time"

// User represents a registered account in the campus events domain.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	ProfilePic   string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Event represents a hosted campus event.
type Event struct {
	ID          string
	Title       string
	Description string
	Category    string
	Date        time.Time
	Location    string
	OrganizerID string
	ImageURL    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RSVP represents a user's attendance response to an event. At most one
// record exists per (user, event) pair, enforced by the storage layer.
type RSVP struct {
	ID        string
	UserID    string
	EventID   string
	Status    string
	CreatedAt time.Time
}

// EventFilter narrows event listing queries.
type EventFilter struct {
	Category string
	Limit    int
}
