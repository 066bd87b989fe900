package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/example/campus-events/internal/persistence"
)

// UserStore captures the persistence operations needed by the auth service.
type UserStore interface {
	CreateUser(ctx context.Context, user persistence.User) error
	GetUser(ctx context.Context, id string) (persistence.User, error)
	GetUserByEmail(ctx context.Context, email string) (persistence.User, error)
}

// PasswordHasher derives a storable hash from a plaintext password.
type PasswordHasher func(password string) (string, error)

// PasswordVerifier compares a stored hash with a candidate password.
type PasswordVerifier func(hashedPassword, password string) error

// AuthService handles registration, login, and profile reads. Tokens are
// issued here; resolving them back into identities is the TokenManager's job.
type AuthService struct {
	users          UserStore
	tokens         *TokenManager
	hashPassword   PasswordHasher
	verifyPassword PasswordVerifier
	idGenerator    func() string
	now            func() time.Time
	logger         *slog.Logger
}

// NewAuthService constructs an AuthService with the provided dependencies.
func NewAuthService(users UserStore, tokens *TokenManager, idGenerator func() string, now func() time.Time) *AuthService {
	return NewAuthServiceWithLogger(users, tokens, idGenerator, now, nil)
}

// NewAuthServiceWithLogger constructs an AuthService with a specified logger.
func NewAuthServiceWithLogger(users UserStore, tokens *TokenManager, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AuthService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		users: users,
		tokens: tokens,
		hashPassword: func(password string) (string, error) {
			return CreatePasswordHash(password, DefaultArgon2idParams)
		},
		verifyPassword: VerifyPassword,
		idGenerator:    idGenerator,
		now:            now,
		logger:         defaultLogger(logger),
	}
}

func (s *AuthService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AuthService", operation, attrs...)
}

// Register validates input, hashes the password, and persists a new account.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) (user User, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}

	normalized := normalizeRegisterParams(params)
	logger := s.loggerWith(ctx, "Register", "email", normalized.Email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "registration failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", user.ID).InfoContext(ctx, "user registered")
	}()

	if vErr := validateRegisterParams(normalized); vErr.HasErrors() {
		err = vErr
		return
	}

	if _, lookupErr := s.users.GetUserByEmail(ctx, normalized.Email); lookupErr == nil {
		err = ErrAlreadyExists
		return
	} else if !errors.Is(lookupErr, persistence.ErrNotFound) {
		err = lookupErr
		return
	}

	hash, err := s.hashPassword(params.Password)
	if err != nil {
		return
	}

	role := normalized.Role
	if role == "" {
		role = RoleStudent
	}

	now := s.now()
	record := persistence.User{
		ID:           s.idGenerator(),
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: hash,
		ProfilePic:   defaultProfilePic,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if normalized.Phone != "" {
		phone := normalized.Phone
		record.Phone = &phone
	}

	if err = s.users.CreateUser(ctx, record); err != nil {
		// Two registrations can pass the lookup concurrently; the unique
		// email index decides the loser.
		if errors.Is(err, persistence.ErrDuplicate) {
			err = ErrAlreadyExists
		}
		return
	}

	user = userFromRecord(record)
	return
}

// Login verifies credentials and issues a signed identity token.
func (s *AuthService) Login(ctx context.Context, params LoginParams) (result LoginResult, err error) {
	if s == nil {
		err = fmt.Errorf("AuthService is nil")
		return
	}
	if s.users == nil {
		err = fmt.Errorf("user store not configured")
		return
	}
	if s.tokens == nil {
		err = fmt.Errorf("token manager not configured")
		return
	}

	email := strings.ToLower(strings.TrimSpace(params.Email))
	logger := s.loggerWith(ctx, "Login", "email", email)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "login failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("user_id", result.User.ID).InfoContext(ctx, "login succeeded")
	}()

	if email == "" || params.Password == "" {
		err = ErrInvalidCredentials
		return
	}

	record, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			err = ErrInvalidCredentials
		}
		return
	}

	if err = s.verifyPassword(record.PasswordHash, params.Password); err != nil {
		err = ErrInvalidCredentials
		return
	}

	identity := Identity{
		UserID: record.ID,
		Name:   record.Name,
		Email:  record.Email,
		Role:   record.Role,
	}
	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return
	}

	result = LoginResult{
		User:      userFromRecord(record),
		Token:     token,
		ExpiresAt: expiresAt,
	}
	return
}

// Profile returns the account behind a resolved identity.
func (s *AuthService) Profile(ctx context.Context, identity Identity) (User, error) {
	if s == nil {
		return User{}, fmt.Errorf("AuthService is nil")
	}
	if s.users == nil {
		return User{}, fmt.Errorf("user store not configured")
	}
	if identity.UserID == "" {
		return User{}, ErrUnauthenticated
	}

	record, err := s.users.GetUser(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, persistence.ErrNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return userFromRecord(record), nil
}

func normalizeRegisterParams(params RegisterParams) RegisterParams {
	return RegisterParams{
		Name:     strings.TrimSpace(params.Name),
		Email:    strings.ToLower(strings.TrimSpace(params.Email)),
		Password: params.Password,
		Phone:    strings.TrimSpace(params.Phone),
		Role:     strings.TrimSpace(params.Role),
	}
}

func validateRegisterParams(params RegisterParams) *ValidationError {
	vErr := &ValidationError{}

	if params.Name == "" {
		vErr.add("name", "name is required")
	}

	if params.Email == "" {
		vErr.add("email", "email is required")
	} else if _, err := mail.ParseAddress(params.Email); err != nil {
		vErr.add("email", "email is invalid")
	}

	if params.Password == "" {
		vErr.add("password", "password is required")
	} else if len(params.Password) < 8 {
		vErr.add("password", "password must be at least 8 characters")
	}

	if params.Role != "" && !validRole(params.Role) {
		vErr.add("role", "role is invalid")
	}

	return vErr
}
