package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/example/campus-events/internal/persistence"
)

func setupRSVPTest(t *testing.T) (*ConnectionPool, *RSVPRepository) {
	t.Helper()

	pool := setupTestPool(t)
	seedUser(t, pool, "user-1", "dana@example.edu")
	seedEvent(t, pool, "event-1", "user-1")
	return pool, NewRSVPRepository(pool)
}

func testRSVP(id string) persistence.RSVP {
	return persistence.RSVP{
		ID:        id,
		UserID:    "user-1",
		EventID:   "event-1",
		Status:    "accepted",
		CreatedAt: referenceInstant(),
	}
}

func TestRSVPRepository_CreateAndGet(t *testing.T) {
	_, repo := setupRSVPTest(t)
	ctx := context.Background()

	if err := repo.CreateRSVP(ctx, testRSVP("rsvp-1")); err != nil {
		t.Fatalf("CreateRSVP failed: %v", err)
	}

	retrieved, err := repo.GetRSVPByUserAndEvent(ctx, "user-1", "event-1")
	if err != nil {
		t.Fatalf("GetRSVPByUserAndEvent failed: %v", err)
	}
	if retrieved.ID != "rsvp-1" || retrieved.Status != "accepted" {
		t.Errorf("unexpected rsvp %+v", retrieved)
	}
}

func TestRSVPRepository_CreateRSVP_SecondInsertIsRefused(t *testing.T) {
	_, repo := setupRSVPTest(t)
	ctx := context.Background()

	if err := repo.CreateRSVP(ctx, testRSVP("rsvp-1")); err != nil {
		t.Fatalf("first CreateRSVP failed: %v", err)
	}
	if err := repo.CreateRSVP(ctx, testRSVP("rsvp-2")); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// The losing insert must not replace the original record.
	retrieved, err := repo.GetRSVPByUserAndEvent(ctx, "user-1", "event-1")
	if err != nil {
		t.Fatalf("GetRSVPByUserAndEvent failed: %v", err)
	}
	if retrieved.ID != "rsvp-1" {
		t.Errorf("expected original record to survive, got %q", retrieved.ID)
	}
}

func TestRSVPRepository_CreateRSVP_RequiresExistingReferences(t *testing.T) {
	_, repo := setupRSVPTest(t)
	ctx := context.Background()

	missingEvent := testRSVP("rsvp-1")
	missingEvent.EventID = "ghost-event"
	if err := repo.CreateRSVP(ctx, missingEvent); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation for missing event, got %v", err)
	}

	missingUser := testRSVP("rsvp-2")
	missingUser.UserID = "ghost-user"
	if err := repo.CreateRSVP(ctx, missingUser); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation for missing user, got %v", err)
	}
}

func TestRSVPRepository_GetRSVPByUserAndEvent_NotFound(t *testing.T) {
	_, repo := setupRSVPTest(t)

	_, err := repo.GetRSVPByUserAndEvent(context.Background(), "user-1", "event-1")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRSVPRepository_CountRSVPsForEvent(t *testing.T) {
	pool, repo := setupRSVPTest(t)
	ctx := context.Background()

	if count, err := repo.CountRSVPsForEvent(ctx, "event-1"); err != nil || count != 0 {
		t.Fatalf("expected empty count, got %d (%v)", count, err)
	}

	for i := 0; i < 3; i++ {
		userID := fmt.Sprintf("counter-%d", i)
		seedUser(t, pool, userID, fmt.Sprintf("counter-%d@example.edu", i))
		rsvp := persistence.RSVP{
			ID:        fmt.Sprintf("rsvp-%d", i),
			UserID:    userID,
			EventID:   "event-1",
			Status:    "accepted",
			CreatedAt: referenceInstant(),
		}
		if err := repo.CreateRSVP(ctx, rsvp); err != nil {
			t.Fatalf("CreateRSVP failed: %v", err)
		}
	}

	if count, err := repo.CountRSVPsForEvent(ctx, "event-1"); err != nil || count != 3 {
		t.Fatalf("expected count 3, got %d (%v)", count, err)
	}
}

func TestRSVPRepository_ConcurrentInsertsPersistOneRow(t *testing.T) {
	_, repo := setupRSVPTest(t)
	ctx := context.Background()

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- repo.CreateRSVP(ctx, testRSVP(fmt.Sprintf("rsvp-%d", i)))
		}(i)
	}
	wg.Wait()
	close(results)

	successes := 0
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, persistence.ErrDuplicate):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 {
		t.Fatalf("expected exactly one successful insert, got %d", successes)
	}

	count, err := repo.CountRSVPsForEvent(ctx, "event-1")
	if err != nil {
		t.Fatalf("CountRSVPsForEvent failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one persisted row, got %d", count)
	}
}
