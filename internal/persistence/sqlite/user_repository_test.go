package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/example/campus-events/internal/persistence"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	phone := "555-0001"
	user := persistence.User{
		ID:           "user-1",
		Name:         "Dana Velez",
		Email:        "Dana@Example.edu",
		PasswordHash: "hashed-password",
		Phone:        &phone,
		ProfilePic:   "default.jpg",
		Role:         "student",
		CreatedAt:    referenceInstant(),
		UpdatedAt:    referenceInstant(),
	}

	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	retrieved, err := repo.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if retrieved.Email != "dana@example.edu" {
		t.Errorf("expected normalized email, got %q", retrieved.Email)
	}
	if retrieved.Phone == nil || *retrieved.Phone != phone {
		t.Errorf("expected phone %q, got %v", phone, retrieved.Phone)
	}
	if !retrieved.CreatedAt.Equal(referenceInstant()) {
		t.Errorf("expected created at %v, got %v", referenceInstant(), retrieved.CreatedAt)
	}
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	seedUser(t, pool, "user-1", "dana@example.edu")

	duplicate := persistence.User{
		ID:           "user-2",
		Name:         "Impostor",
		Email:        "DANA@example.edu",
		PasswordHash: "hashed-password",
		ProfilePic:   "default.jpg",
		Role:         "student",
		CreatedAt:    referenceInstant(),
		UpdatedAt:    referenceInstant(),
	}
	if err := repo.CreateUser(ctx, duplicate); !errors.Is(err, persistence.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestUserRepository_CreateUser_RejectsUnknownRole(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewUserRepository(pool)

	user := persistence.User{
		ID:           "user-1",
		Name:         "Dana",
		Email:        "dana@example.edu",
		PasswordHash: "hashed-password",
		ProfilePic:   "default.jpg",
		Role:         "overlord",
		CreatedAt:    referenceInstant(),
		UpdatedAt:    referenceInstant(),
	}
	if err := repo.CreateUser(context.Background(), user); !errors.Is(err, persistence.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	pool := setupTestPool(t)
	repo := NewUserRepository(pool)
	ctx := context.Background()

	seedUser(t, pool, "user-1", "dana@example.edu")

	retrieved, err := repo.GetUserByEmail(ctx, "  DANA@EXAMPLE.EDU ")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if retrieved.ID != "user-1" {
		t.Errorf("expected user-1, got %q", retrieved.ID)
	}

	if _, err := repo.GetUserByEmail(ctx, "nobody@example.edu"); !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetUser_NotFound(t *testing.T) {
	pool := setupTestPool(t)

	_, err := NewUserRepository(pool).GetUser(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
