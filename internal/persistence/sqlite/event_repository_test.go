package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

func TestEventRepository_CreateAndGet(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewEventRepository(pool)
	ctx := context.Background()

	seedUser(t, pool, "organizer-1", "organizer@example.edu")

	imageURL := "https://cdn.example.edu/hackathon.png"
	event := persistence.Event{
		ID:          "event-1",
		Title:       "Spring Hackathon",
		Description: "Overnight build session",
		Category:    "educational",
		Date:        referenceInstant().AddDate(0, 0, 14),
		Location:    "Engineering Hall",
		OrganizerID: "organizer-1",
		ImageURL:    &imageURL,
		CreatedAt:   referenceInstant(),
		UpdatedAt:   referenceInstant(),
	}
	if err := repo.CreateEvent(ctx, event); err != nil {
		t.Fatalf("CreateEvent failed: %v", err)
	}

	retrieved, err := repo.GetEvent(ctx, "event-1")
	if err != nil {
		t.Fatalf("GetEvent failed: %v", err)
	}
	if retrieved.Title != event.Title || retrieved.Category != event.Category {
		t.Errorf("unexpected event %+v", retrieved)
	}
	if retrieved.ImageURL == nil || *retrieved.ImageURL != imageURL {
		t.Errorf("expected image URL %q, got %v", imageURL, retrieved.ImageURL)
	}
	if !retrieved.Date.Equal(event.Date) {
		t.Errorf("expected date %v, got %v", event.Date, retrieved.Date)
	}
}

func TestEventRepository_CreateEvent_RequiresOrganizer(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewEventRepository(pool)

	event := persistence.Event{
		ID:          "event-1",
		Title:       "Orphan Event",
		Description: "no organizer",
		Category:    "unlisted",
		Date:        referenceInstant(),
		Location:    "Nowhere",
		OrganizerID: "ghost",
		CreatedAt:   referenceInstant(),
		UpdatedAt:   referenceInstant(),
	}
	if err := repo.CreateEvent(context.Background(), event); !errors.Is(err, persistence.ErrForeignKeyViolation) {
		t.Fatalf("expected ErrForeignKeyViolation, got %v", err)
	}
}

func TestEventRepository_CreateEvent_RejectsUnknownCategory(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewEventRepository(pool)

	seedUser(t, pool, "organizer-1", "organizer@example.edu")

	event := persistence.Event{
		ID:          "event-1",
		Title:       "Mystery Meetup",
		Description: "uncategorizable",
		Category:    "mystery",
		Date:        referenceInstant(),
		Location:    "Basement",
		OrganizerID: "organizer-1",
		CreatedAt:   referenceInstant(),
		UpdatedAt:   referenceInstant(),
	}
	if err := repo.CreateEvent(context.Background(), event); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestEventRepository_ListEvents(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewEventRepository(pool)
	ctx := context.Background()

	seedUser(t, pool, "organizer-1", "organizer@example.edu")
	categories := []string{"sports", "art", "sports", "cultural"}
	for i, category := range categories {
		event := persistence.Event{
			ID:          fmt.Sprintf("event-%d", i+1),
			Title:       fmt.Sprintf("Event %d", i+1),
			Description: "listing test",
			Category:    category,
			Date:        referenceInstant().AddDate(0, 0, i),
			Location:    "Hall",
			OrganizerID: "organizer-1",
			CreatedAt:   referenceInstant().Add(time.Duration(i) * time.Minute),
			UpdatedAt:   referenceInstant().Add(time.Duration(i) * time.Minute),
		}
		if err := repo.CreateEvent(ctx, event); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	t.Run("returns newest first", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, persistence.EventFilter{})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 4 {
			t.Fatalf("expected 4 events, got %d", len(events))
		}
		if events[0].ID != "event-4" || events[3].ID != "event-1" {
			t.Errorf("unexpected order: %s ... %s", events[0].ID, events[3].ID)
		}
	})

	t.Run("applies the category filter", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, persistence.EventFilter{Category: "sports"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 sports events, got %d", len(events))
		}
	})

	t.Run("applies the limit", func(t *testing.T) {
		events, err := repo.ListEvents(ctx, persistence.EventFilter{Limit: 2})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].ID != "event-4" {
			t.Errorf("expected newest event first, got %s", events[0].ID)
		}
	})
}

func TestEventRepository_GetEvent_NotFound(t *testing.T) {
	pool := setupTestPool(t)

	_, err := NewEventRepository(pool).GetEvent(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
