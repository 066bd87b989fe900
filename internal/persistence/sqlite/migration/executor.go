package migration

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// Executor applies migrations against a SQLite database.
type Executor struct {
	db *sql.DB
}

// NewExecutor creates an executor bound to the provided database handle.
func NewExecutor(db *sql.DB) *Executor {
	return &Executor{db: db}
}

// InitializeVersionTable creates the schema_migrations table if it doesn't exist.
func (e *Executor) InitializeVersionTable(ctx context.Context) error {
	const create = `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TEXT NOT NULL,
			checksum TEXT,
			execution_time_ms INTEGER
		)
	`
	if _, err := e.db.ExecContext(ctx, create); err != nil {
		return newError("", "", "create schema_migrations table", err)
	}
	return nil
}

// ExecuteMigration runs a single migration inside a transaction.
func (e *Executor) ExecuteMigration(ctx context.Context, m Migration) error {
	statements := splitStatements(m.SQL)
	if len(statements) == 0 {
		return newError(m.Version, m.Path, "parse SQL", ErrEmptyMigration)
	}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return newError(m.Version, m.Path, "begin transaction", err)
	}

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				return newError(m.Version, m.Path, "execute statement",
					errors.Join(err, rbErr))
			}
			return newError(m.Version, m.Path, "execute statement", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return newError(m.Version, m.Path, "commit transaction", err)
	}

	return nil
}

// RecordMigration records a successfully applied migration.
func (e *Executor) RecordMigration(ctx context.Context, m Migration, executionTime time.Duration) error {
	const insert = `
		INSERT INTO schema_migrations (version, applied_at, checksum, execution_time_ms)
		VALUES (?, ?, ?, ?)
	`
	appliedAt := time.Now().UTC().Format(time.RFC3339)
	if _, err := e.db.ExecContext(ctx, insert, m.Version, appliedAt, m.Checksum, executionTime.Milliseconds()); err != nil {
		return newError(m.Version, m.Path, "record migration", err)
	}
	return nil
}

// IsVersionApplied reports whether a migration version has been applied.
func (e *Executor) IsVersionApplied(ctx context.Context, version string) (bool, error) {
	const query = `SELECT 1 FROM schema_migrations WHERE version = ? LIMIT 1`

	var exists int
	err := e.db.QueryRowContext(ctx, query, version).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, newError(version, "", "check version applied", err)
	}
	return true, nil
}

// GetAppliedVersions returns all applied migrations ordered by version.
func (e *Executor) GetAppliedVersions(ctx context.Context) ([]AppliedMigration, error) {
	const query = `
		SELECT version, applied_at, COALESCE(checksum, ''), COALESCE(execution_time_ms, 0)
		FROM schema_migrations
		ORDER BY version ASC
	`

	rows, err := e.db.QueryContext(ctx, query)
	if err != nil {
		return nil, newError("", "", "list applied versions", err)
	}
	defer rows.Close()

	var applied []AppliedMigration
	for rows.Next() {
		var (
			record      AppliedMigration
			appliedAt   string
			executionMs int64
		)
		if err := rows.Scan(&record.Version, &appliedAt, &record.Checksum, &executionMs); err != nil {
			return nil, newError("", "", "scan applied migration", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339, appliedAt); parseErr == nil {
			record.AppliedAt = parsed
		}
		record.ExecutionTime = time.Duration(executionMs) * time.Millisecond
		applied = append(applied, record)
	}

	if err := rows.Err(); err != nil {
		return nil, newError("", "", "iterate applied migrations", err)
	}

	return applied, nil
}

// splitStatements splits migration SQL into individual statements, dropping
// comment-only and empty fragments.
func splitStatements(content string) []string {
	var statements []string
	for _, fragment := range strings.Split(content, ";") {
		cleaned := strings.TrimSpace(stripSQLComments(fragment))
		if cleaned == "" {
			continue
		}
		statements = append(statements, cleaned)
	}
	return statements
}
