// Package migration provides a versioned schema migration runner for SQLite.
//
// Migration files live on an fs.FS (typically embedded in the binary) and
// follow the naming convention {version}_{description}.sql, for example
// "001_initial_schema.sql". The runner applies pending migrations in version
// order, each inside its own transaction, and records applied versions in a
// schema_migrations table so repeated runs are no-ops.
package migration
