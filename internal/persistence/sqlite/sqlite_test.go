package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

func setupTestPool(t *testing.T) *ConnectionPool {
	t.Helper()

	pool, err := Open(filepath.Join(t.TempDir(), "campus-events.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = pool.Close() })

	if err := Migrate(context.Background(), pool, nil); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return pool
}

func seedUser(t *testing.T, pool *ConnectionPool, id, email string) persistence.User {
	t.Helper()

	user := persistence.User{
		ID:           id,
		Name:         "Seed User",
		Email:        email,
		PasswordHash: "hashed-password",
		ProfilePic:   "default.jpg",
		Role:         "student",
		CreatedAt:    referenceInstant(),
		UpdatedAt:    referenceInstant(),
	}
	if err := NewUserRepository(pool).CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
	return user
}

func seedEvent(t *testing.T, pool *ConnectionPool, id, organizerID string) persistence.Event {
	t.Helper()

	event := persistence.Event{
		ID:          id,
		Title:       "Seed Event",
		Description: "seeded",
		Category:    "unlisted",
		Date:        referenceInstant().AddDate(0, 0, 7),
		Location:    "Main Hall",
		OrganizerID: organizerID,
		CreatedAt:   referenceInstant(),
		UpdatedAt:   referenceInstant(),
	}
	if err := NewEventRepository(pool).CreateEvent(context.Background(), event); err != nil {
		t.Fatalf("failed to seed event %s: %v", id, err)
	}
	return event
}

func referenceInstant() time.Time {
	return time.Date(2026, time.March, 9, 12, 30, 0, 0, time.UTC)
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	pool := setupTestPool(t)

	var enabled int
	if err := pool.DB().QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Fatalf("expected foreign_keys pragma enabled, got %d", enabled)
	}
}

func TestMigrate_IsIdempotent(t *testing.T) {
	pool := setupTestPool(t)

	if err := Migrate(context.Background(), pool, nil); err != nil {
		t.Fatalf("second migration run failed: %v", err)
	}

	var count int
	if err := pool.DB().QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("failed to count applied migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", count)
	}
}

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", sql.ErrNoRows, persistence.ErrNotFound},
		{"unique constraint", errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), persistence.ErrDuplicate},
		{"foreign key constraint", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), persistence.ErrForeignKeyViolation},
		{"check constraint", errors.New("constraint failed: CHECK constraint failed: role (275)"), persistence.ErrConstraintViolation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapError(tc.in); !errors.Is(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("passes through unrelated errors", func(t *testing.T) {
		underlying := errors.New("disk full")
		if got := mapError(underlying); !errors.Is(got, underlying) {
			t.Fatalf("expected passthrough, got %v", got)
		}
	})

	t.Run("preserves nil", func(t *testing.T) {
		if got := mapError(nil); got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}
