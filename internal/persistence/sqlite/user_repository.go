package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

// UserRepository implements persistence.UserRepository using SQLite.
type UserRepository struct {
	helper *QueryHelper
}

// NewUserRepository creates a SQLite-backed user repository.
func NewUserRepository(pool *ConnectionPool) *UserRepository {
	return &UserRepository{helper: NewQueryHelper(pool)}
}

// CreateUser inserts a new user. A duplicate email surfaces as ErrDuplicate.
func (r *UserRepository) CreateUser(ctx context.Context, user persistence.User) error {
	if user.ID == "" || user.PasswordHash == "" {
		return persistence.ErrConstraintViolation
	}

	const query = `
		INSERT INTO users (id, name, email, password_hash, phone, profile_pic, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.helper.Exec(ctx, query,
		user.ID,
		user.Name,
		normalizeEmail(user.Email),
		user.PasswordHash,
		user.Phone,
		user.ProfilePic,
		user.Role,
		user.CreatedAt.UTC().Format(time.RFC3339),
		user.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return mapError(err)
	}

	return nil
}

// GetUser retrieves a user by ID.
func (r *UserRepository) GetUser(ctx context.Context, id string) (persistence.User, error) {
	if id == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, name, email, password_hash, phone, profile_pic, role, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.helper.QueryRow(ctx, query, id))
}

// GetUserByEmail retrieves a user by email address. Lookups are
// case-insensitive because emails are stored normalized.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (persistence.User, error) {
	if email == "" {
		return persistence.User{}, persistence.ErrNotFound
	}

	const query = `
		SELECT id, name, email, password_hash, phone, profile_pic, role, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.helper.QueryRow(ctx, query, normalizeEmail(email)))
}

func (r *UserRepository) scanUser(row *sql.Row) (persistence.User, error) {
	var (
		user      persistence.User
		createdAt string
		updatedAt string
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Phone,
		&user.ProfilePic,
		&user.Role,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return persistence.User{}, persistence.ErrNotFound
		}
		return persistence.User{}, mapError(err)
	}

	if user.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return persistence.User{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return persistence.User{}, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return user, nil
}

// normalizeEmail normalizes email addresses for consistent storage and lookup.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
