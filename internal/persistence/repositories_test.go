package persistence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-events/internal/persistence"
	"github.com/example/campus-events/internal/testfixtures"
)

func newPersistenceUser(opts ...testfixtures.UserOption) persistence.User {
	return testfixtures.NewUserFixture(opts...).Persistence()
}

func newPersistenceEvent(opts ...testfixtures.EventOption) persistence.Event {
	return testfixtures.NewEventFixture(opts...).Persistence()
}

func newPersistenceRSVP(opts ...testfixtures.RSVPOption) persistence.RSVP {
	return testfixtures.NewRSVPFixture(opts...).Persistence()
}

func TestUserRepository(t *testing.T) {
	t.Parallel()

	t.Run("creates and reads users by ID and email", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		user := newPersistenceUser(
			testfixtures.WithUserName("Alice"),
			testfixtures.WithUserEmail("alice@example.edu"),
			testfixtures.WithUserPhone("555-0100"),
		)

		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		fetched, err := harness.Users.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if fetched.Name != "Alice" {
			t.Fatalf("expected name Alice, got %q", fetched.Name)
		}
		if fetched.Phone == nil || *fetched.Phone != "555-0100" {
			t.Fatalf("expected phone 555-0100, got %v", fetched.Phone)
		}

		byEmail, err := harness.Users.GetUserByEmail(ctx, "alice@example.edu")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if byEmail.ID != user.ID {
			t.Fatalf("expected user %s, got %s", user.ID, byEmail.ID)
		}
	})

	t.Run("rejects a second account with the same email", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		first := newPersistenceUser(testfixtures.WithUserEmail("shared@example.edu"))
		if err := harness.Users.CreateUser(ctx, first); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		second := newPersistenceUser(testfixtures.WithUserEmail("shared@example.edu"))
		if err := harness.Users.CreateUser(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}
	})
}

func TestEventRepository(t *testing.T) {
	t.Parallel()

	t.Run("creates events for an existing organizer", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		organizer := newPersistenceUser()
		if err := harness.Users.CreateUser(ctx, organizer); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		event := newPersistenceEvent(
			testfixtures.WithEventTitle("Spring Concert"),
			testfixtures.WithEventOrganizer(organizer.ID),
		)
		if err := harness.Events.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}

		fetched, err := harness.Events.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if fetched.Title != "Spring Concert" {
			t.Fatalf("expected title Spring Concert, got %q", fetched.Title)
		}
		if fetched.OrganizerID != organizer.ID {
			t.Fatalf("expected organizer %s, got %s", organizer.ID, fetched.OrganizerID)
		}
	})

	t.Run("refuses events whose organizer does not exist", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		event := newPersistenceEvent()
		if err := harness.Events.CreateEvent(ctx, event); !errors.Is(err, persistence.ErrForeignKeyViolation) {
			t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
		}
	})

	t.Run("lists events filtered by category", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		organizer := newPersistenceUser()
		if err := harness.Users.CreateUser(ctx, organizer); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}

		sports := newPersistenceEvent(
			testfixtures.WithEventCategory("sports"),
			testfixtures.WithEventOrganizer(organizer.ID),
		)
		cultural := newPersistenceEvent(
			testfixtures.WithEventCategory("cultural"),
			testfixtures.WithEventOrganizer(organizer.ID),
		)
		for _, event := range []persistence.Event{sports, cultural} {
			if err := harness.Events.CreateEvent(ctx, event); err != nil {
				t.Fatalf("CreateEvent failed: %v", err)
			}
		}

		listed, err := harness.Events.ListEvents(ctx, persistence.EventFilter{Category: "sports", Limit: 10})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(listed) != 1 || listed[0].ID != sports.ID {
			t.Fatalf("expected only the sports event, got %d entries", len(listed))
		}
	})
}

func TestRSVPRepository(t *testing.T) {
	t.Parallel()

	t.Run("persists at most one record per user and event", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		harness := testfixtures.NewSQLiteHarness(t)

		user := newPersistenceUser()
		if err := harness.Users.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		event := newPersistenceEvent(testfixtures.WithEventOrganizer(user.ID))
		if err := harness.Events.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}

		first := newPersistenceRSVP(
			testfixtures.WithRSVPUser(user.ID),
			testfixtures.WithRSVPEvent(event.ID),
		)
		if err := harness.RSVPs.CreateRSVP(ctx, first); err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}

		second := newPersistenceRSVP(
			testfixtures.WithRSVPUser(user.ID),
			testfixtures.WithRSVPEvent(event.ID),
		)
		if err := harness.RSVPs.CreateRSVP(ctx, second); !errors.Is(err, persistence.ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate, got %v", err)
		}

		stored, err := harness.RSVPs.GetRSVPByUserAndEvent(ctx, user.ID, event.ID)
		if err != nil {
			t.Fatalf("GetRSVPByUserAndEvent failed: %v", err)
		}
		if stored.ID != first.ID {
			t.Fatalf("expected the first record to survive, got %s", stored.ID)
		}

		count, err := harness.RSVPs.CountRSVPsForEvent(ctx, event.ID)
		if err != nil {
			t.Fatalf("CountRSVPsForEvent failed: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected 1 attendee, got %d", count)
		}
	})
}

// The in-memory store backs service tests and must present the same contract
// as the SQLite repositories.
var (
	_ persistence.UserRepository  = (*testfixtures.MemoryStore)(nil)
	_ persistence.EventRepository = (*testfixtures.MemoryStore)(nil)
	_ persistence.RSVPRepository  = (*testfixtures.MemoryStore)(nil)
)
