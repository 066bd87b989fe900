package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/campus-events/internal/persistence"
	"github.com/example/campus-events/internal/persistence/sqlite"
)

// SQLiteHarness provides repository access backed by a temporary SQLite
// database for integration-style persistence tests.
type SQLiteHarness struct {
	Pool   *sqlite.ConnectionPool
	Users  persistence.UserRepository
	Events persistence.EventRepository
	RSVPs  persistence.RSVPRepository

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness constructs a SQLiteHarness using a temporary file that is
// migrated automatically. Callers may optionally invoke Close, but the helper
// also registers a cleanup callback with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "campus-events.db")

	pool, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	if err := sqlite.Migrate(context.Background(), pool, nil); err != nil {
		_ = pool.Close()
		tb.Fatalf("failed to migrate database: %v", err)
	}

	harness := &SQLiteHarness{
		Pool:   pool,
		Users:  sqlite.NewUserRepository(pool),
		Events: sqlite.NewEventRepository(pool),
		RSVPs:  sqlite.NewRSVPRepository(pool),
		cleanup: func() {
			_ = pool.Close()
		},
	}

	tb.Cleanup(harness.Close)
	return harness
}
