package migration

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMigrationFile indicates that a migration file is malformed.
	ErrInvalidMigrationFile = errors.New("invalid migration file format")
	// ErrInvalidVersion indicates that a migration version is not numeric.
	ErrInvalidVersion = errors.New("invalid migration version")
	// ErrDuplicateVersion indicates that multiple migrations share a version.
	ErrDuplicateVersion = errors.New("duplicate migration version")
	// ErrEmptyMigration indicates that a migration contains no SQL statements.
	ErrEmptyMigration = errors.New("migration contains no SQL statements")
)

// Error wraps migration failures with the version, file, and operation involved.
type Error struct {
	Version   string
	Path      string
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("migration %s (%s): %s: %v", e.Version, e.Path, e.Operation, e.Err)
	}
	return fmt.Sprintf("migration (%s): %s: %v", e.Path, e.Operation, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(version, path, operation string, err error) *Error {
	return &Error{Version: version, Path: path, Operation: operation, Err: err}
}
