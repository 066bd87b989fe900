package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/campus-events/internal/application"
	"github.com/example/campus-events/internal/persistence"
)

var (
	userCounter  uint64
	eventCounter uint64
	rsvpCounter  uint64
)

var referenceTime = time.Date(2026, time.March, 9, 12, 30, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
func ReferenceTime() time.Time {
	return referenceTime
}

// Fixture identifiers are UUID shaped so they pass format validation in the
// services. The first block distinguishes the entity kind.
func fixtureID(kind string, idx uint64) string {
	return fmt.Sprintf("%s-0000-4000-8000-%012d", kind, idx)
}

// ----------------------------- User fixtures -----------------------------

// UserFixture represents a deterministic user record that can be materialised
// for application or persistence tests.
type UserFixture struct {
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

// UserOption configures the generated user fixture.
type UserOption func(*UserFixture)

// NewUserFixture returns a deterministic user fixture with optional overrides.
func NewUserFixture(opts ...UserOption) UserFixture {
	idx := atomic.AddUint64(&userCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := UserFixture{
		ID:           fixtureID("00000001", idx),
		Name:         fmt.Sprintf("User %03d", idx),
		Email:        fmt.Sprintf("user-%03d@example.edu", idx),
		PasswordHash: fmt.Sprintf("hash-%03d", idx),
		ProfilePic:   "default.jpg",
		Role:         application.RoleStudent,
		CreatedAt:    created,
		UpdatedAt:    created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithUserID overrides the generated user ID.
func WithUserID(id string) UserOption {
	return func(f *UserFixture) {
		f.ID = id
	}
}

// WithUserName overrides the generated display name.
func WithUserName(name string) UserOption {
	return func(f *UserFixture) {
		f.Name = name
	}
}

// WithUserEmail overrides the generated email address.
func WithUserEmail(email string) UserOption {
	return func(f *UserFixture) {
		f.Email = email
	}
}

// WithUserPasswordHash overrides the generated password hash.
func WithUserPasswordHash(hash string) UserOption {
	return func(f *UserFixture) {
		f.PasswordHash = hash
	}
}

// WithUserPhone sets the optional phone number.
func WithUserPhone(phone string) UserOption {
	return func(f *UserFixture) {
		value := phone
		f.Phone = &value
	}
}

// WithUserRole overrides the generated role.
func WithUserRole(role string) UserOption {
	return func(f *UserFixture) {
		f.Role = role
	}
}

// WithUserTimestamps sets both created and updated timestamps on the fixture.
func WithUserTimestamps(created, updated time.Time) UserOption {
	return func(f *UserFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.User value.
func (f UserFixture) Persistence() persistence.User {
	return persistence.User{
		ID:           f.ID,
		Name:         f.Name,
		Email:        f.Email,
		PasswordHash: f.PasswordHash,
		Phone:        copyStringPtr(f.Phone),
		ProfilePic:   f.ProfilePic,
		Role:         f.Role,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

// Identity returns an application.Identity derived from the fixture.
func (f UserFixture) Identity() application.Identity {
	return application.Identity{
		UserID: f.ID,
		Name:   f.Name,
		Email:  f.Email,
		Role:   f.Role,
	}
}

// ----------------------------- Event fixtures ----------------------------

// EventFixture represents a deterministic event record.
type EventFixture struct {
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

// EventOption configures the generated event fixture.
type EventOption func(*EventFixture)

// NewEventFixture returns a deterministic event fixture with optional overrides.
func NewEventFixture(opts ...EventOption) EventFixture {
	idx := atomic.AddUint64(&eventCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	fixture := EventFixture{
		ID:          fixtureID("00000002", idx),
		Title:       fmt.Sprintf("Event %03d", idx),
		Description: fmt.Sprintf("Description for event %03d", idx),
		Category:    application.CategoryUnlisted,
		Date:        referenceTime.AddDate(0, 0, int(idx)),
		Location:    "Main Auditorium",
		OrganizerID: fixtureID("00000001", idx),
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEventID overrides the generated event ID.
func WithEventID(id string) EventOption {
	return func(f *EventFixture) {
		f.ID = id
	}
}

// WithEventTitle overrides the generated title.
func WithEventTitle(title string) EventOption {
	return func(f *EventFixture) {
		f.Title = title
	}
}

// WithEventCategory overrides the generated category.
func WithEventCategory(category string) EventOption {
	return func(f *EventFixture) {
		f.Category = category
	}
}

// WithEventDate sets the event date.
func WithEventDate(t time.Time) EventOption {
	return func(f *EventFixture) {
		f.Date = t
	}
}

// WithEventOrganizer sets the organizer ID.
func WithEventOrganizer(id string) EventOption {
	return func(f *EventFixture) {
		f.OrganizerID = id
	}
}

// WithEventImageURL sets the optional image URL.
func WithEventImageURL(url string) EventOption {
	return func(f *EventFixture) {
		value := url
		f.ImageURL = &value
	}
}

// WithEventTimestamps sets both created and updated timestamps.
func WithEventTimestamps(created, updated time.Time) EventOption {
	return func(f *EventFixture) {
		f.CreatedAt = created
		f.UpdatedAt = updated
	}
}

// Persistence returns the fixture as a persistence.Event value.
func (f EventFixture) Persistence() persistence.Event {
	return persistence.Event{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Date:        f.Date,
		Location:    f.Location,
		OrganizerID: f.OrganizerID,
		ImageURL:    copyStringPtr(f.ImageURL),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// Input returns the fixture as an application.EventInput.
func (f EventFixture) Input() application.EventInput {
	var imageURL string
	if f.ImageURL != nil {
		imageURL = *f.ImageURL
	}
	return application.EventInput{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Date:        f.Date,
		Location:    f.Location,
		ImageURL:    imageURL,
	}
}

// ----------------------------- RSVP fixtures -----------------------------

// RSVPFixture represents a deterministic RSVP record.
type RSVPFixture struct {
	ID        string
	UserID    string
	EventID   string
	Status    string
	CreatedAt time.Time
}

// RSVPOption configures the generated RSVP fixture.
type RSVPOption func(*RSVPFixture)

// NewRSVPFixture returns a deterministic RSVP fixture with optional overrides.
func NewRSVPFixture(opts ...RSVPOption) RSVPFixture {
	idx := atomic.AddUint64(&rsvpCounter, 1)
	fixture := RSVPFixture{
		ID:        fixtureID("00000003", idx),
		UserID:    fixtureID("00000001", idx),
		EventID:   fixtureID("00000002", idx),
		Status:    application.RSVPStatusAccepted,
		CreatedAt: referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithRSVPID overrides the generated RSVP ID.
func WithRSVPID(id string) RSVPOption {
	return func(f *RSVPFixture) {
		f.ID = id
	}
}

// WithRSVPUser sets the user ID.
func WithRSVPUser(id string) RSVPOption {
	return func(f *RSVPFixture) {
		f.UserID = id
	}
}

// WithRSVPEvent sets the event ID.
func WithRSVPEvent(id string) RSVPOption {
	return func(f *RSVPFixture) {
		f.EventID = id
	}
}

// WithRSVPStatus overrides the status.
func WithRSVPStatus(status string) RSVPOption {
	return func(f *RSVPFixture) {
		f.Status = status
	}
}

// Persistence returns the fixture as a persistence.RSVP value.
func (f RSVPFixture) Persistence() persistence.RSVP {
	return persistence.RSVP{
		ID:        f.ID,
		UserID:    f.UserID,
		EventID:   f.EventID,
		Status:    f.Status,
		CreatedAt: f.CreatedAt,
	}
}

// helper to deep copy optional strings.
func copyStringPtr(src *string) *string {
	if src == nil {
		return nil
	}
	value := *src
	return &value
}
