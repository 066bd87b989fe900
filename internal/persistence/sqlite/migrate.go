package sqlite

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/example/campus-events/internal/persistence/sqlite/migration"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies all pending schema migrations embedded in the binary.
func Migrate(ctx context.Context, pool *ConnectionPool, logger *slog.Logger) error {
	fsys, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	manager := migration.NewManager(
		migration.NewScanner(fsys),
		migration.NewExecutor(pool.DB()),
		logger,
	)
	return manager.Run(ctx)
}
