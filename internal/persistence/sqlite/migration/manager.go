package migration

import (
	"context"
	"log/slog"
	"time"
)

// Manager orchestrates the migration process: it discovers migrations through
// a Scanner and applies the pending ones through an Executor.
type Manager struct {
	scanner  *Scanner
	executor *Executor
	logger   *slog.Logger
}

// NewManager wires a scanner and executor into a migration manager.
func NewManager(scanner *Scanner, executor *Executor, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{scanner: scanner, executor: executor, logger: logger}
}

// Run applies all pending migrations in version order. Already applied
// versions are skipped, so Run is safe to call on every startup.
func (m *Manager) Run(ctx context.Context) error {
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return err
	}

	migrations, err := m.scanner.ScanMigrations()
	if err != nil {
		return err
	}

	for _, mig := range migrations {
		applied, err := m.executor.IsVersionApplied(ctx, mig.Version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		m.logger.InfoContext(ctx, "applying migration",
			"version", mig.Version,
			"description", mig.Description,
		)

		start := time.Now()
		if err := m.executor.ExecuteMigration(ctx, mig); err != nil {
			m.logger.ErrorContext(ctx, "migration failed",
				"version", mig.Version,
				"error", err,
			)
			return err
		}

		if err := m.executor.RecordMigration(ctx, mig, time.Since(start)); err != nil {
			return err
		}

		m.logger.InfoContext(ctx, "migration applied",
			"version", mig.Version,
			"duration", time.Since(start),
		)
	}

	return nil
}

// GetStatus reports the applied and pending migrations for the database.
func (m *Manager) GetStatus(ctx context.Context) (*Status, error) {
	if err := m.executor.InitializeVersionTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.executor.GetAppliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	migrations, err := m.scanner.ScanMigrations()
	if err != nil {
		return nil, err
	}

	appliedVersions := make(map[string]struct{}, len(applied))
	for _, record := range applied {
		appliedVersions[record.Version] = struct{}{}
	}

	status := &Status{Applied: applied}
	if len(applied) > 0 {
		status.CurrentVersion = applied[len(applied)-1].Version
	}
	for _, mig := range migrations {
		if _, ok := appliedVersions[mig.Version]; !ok {
			status.Pending = append(status.Pending, mig)
		}
	}

	return status, nil
}
