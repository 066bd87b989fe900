package migration

import "time"

// Migration represents a schema migration with its metadata and SQL content.
type Migration struct {
	Version     string
	Description string
	SQL         string
	Path        string
	Checksum    string
}

// AppliedMigration represents a migration recorded in the schema_migrations table.
type AppliedMigration struct {
	Version       string
	AppliedAt     time.Time
	ExecutionTime time.Duration
	Checksum      string
}

// Status summarises the migration state of a database.
type Status struct {
	CurrentVersion string
	Applied        []AppliedMigration
	Pending        []Migration
}
