package application

import (
	"strings"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

// User roles. StudentRole is the default for registrations that do not
// request a role.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
)

// Event categories. CategoryUnlisted is assigned when no category is given.
const (
	CategorySports      = "sports"
	CategoryAll         = "all"
	CategoryCultural    = "cultural"
	CategoryEducational = "educational"
	CategoryArt         = "art"
	CategoryUnlisted    = "unlisted"
)

// RSVPStatusAccepted is the status recorded for every RSVP created through
// the workflow. The remaining statuses exist in storage for future use.
const (
	RSVPStatusAccepted = "accepted"
	RSVPStatusDeclined = "declined"
	RSVPStatusPending  = "pending"
)

const defaultProfilePic = "default.jpg"

// Identity is the server-derived caller identity resolved from a verified
// token. Request payloads never contribute to it.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
}

// User is the account representation returned to callers. It never carries
// the password hash.
type User struct {
	ID         string
	Name       string
	Email      string
	Phone      *string
	ProfilePic string
	Role       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RegisterParams carries a registration request.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Role     string
}

// LoginParams carries a login request.
type LoginParams struct {
	Email    string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// EventInput carries the caller-supplied fields of an event. The organizer
// comes from the resolved identity, never from input.
type EventInput struct {
	Title       string
	Description string
	Category    string
	Date        time.Time
	Location    string
	ImageURL    string
}

// Event is the event representation returned to callers. AttendeeCount is
// populated on single-event reads.
type Event struct {
	ID            string
	Title         string
	Description   string
	Category      string
	Date          time.Time
	Location      string
	OrganizerID   string
	ImageURL      *string
	AttendeeCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateEventParams pairs the resolved caller identity with the event fields.
type CreateEventParams struct {
	Identity Identity
	Input    EventInput
}

// ListEventsParams filters the event listing. A zero Limit selects the
// service default.
type ListEventsParams struct {
	Category string
	Limit    int
}

// RSVP is an attendance record for a (user, event) pair.
type RSVP struct {
	ID        string
	UserID    string
	EventID   string
	Status    string
	CreatedAt time.Time
}

// CreateRSVPParams pairs the resolved caller identity with the target event.
type CreateRSVPParams struct {
	Identity Identity
	EventID  string
}

func trim(s string) string {
	return strings.TrimSpace(s)
}

func trimLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validRole(role string) bool {
	switch role {
	case RoleStudent, RoleAdmin, RoleFaculty:
		return true
	}
	return false
}

func validCategory(category string) bool {
	switch category {
	case CategorySports, CategoryAll, CategoryCultural, CategoryEducational, CategoryArt, CategoryUnlisted:
		return true
	}
	return false
}

func userFromRecord(record persistence.User) User {
	return User{
		ID:         record.ID,
		Name:       record.Name,
		Email:      record.Email,
		Phone:      record.Phone,
		ProfilePic: record.ProfilePic,
		Role:       record.Role,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

func eventFromRecord(record persistence.Event) Event {
	return Event{
		ID:          record.ID,
		Title:       record.Title,
		Description: record.Description,
		Category:    record.Category,
		Date:        record.Date,
		Location:    record.Location,
		OrganizerID: record.OrganizerID,
		ImageURL:    record.ImageURL,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

func rsvpFromRecord(record persistence.RSVP) RSVP {
	return RSVP{
		ID:        record.ID,
		UserID:    record.UserID,
		EventID:   record.EventID,
		Status:    record.Status,
		CreatedAt: record.CreatedAt,
	}
}
