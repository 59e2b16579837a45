package patchline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Migrator is the orchestrator for one database's timeline. It composes
// the catalog scan, the plan, the patch executor, and the version store:
// read current version, build plan, preflight the destination, execute,
// and commit the new version only after every patch succeeded.
type Migrator struct {
	cfg    Config
	dbPath string
	logger *slog.Logger
}

// Result describes a completed migration run.
type Result struct {
	// From is the schema version before the run.
	From int

	// To is the schema version committed after the run.
	To int

	// Applied lists the patches that ran, in order. Empty when the
	// database was already current.
	Applied []Patch
}

// New creates a Migrator from cfg. It validates the configuration and
// resolves the database file, creating it (and missing parent directories)
// when cfg.Create permits, but runs no patches. Create and ReadOnly are
// mutually exclusive: a read-only configuration must never write the file.
func New(cfg Config) (*Migrator, error) {
	cfg = cfg.withDefaults()
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("no database path configured")
	}
	if cfg.TimelineDir == "" {
		return nil, fmt.Errorf("no timeline directory configured")
	}
	if cfg.ReadOnly && cfg.Create {
		return nil, fmt.Errorf("%w: creating the database file would write it", ErrReadOnly)
	}

	dbPath, err := filepath.Abs(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("resolving database path %s: %w", cfg.DatabasePath, err)
	}

	if _, err := os.Stat(dbPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("inspecting database %s: %w", dbPath, err)
		}
		if !cfg.Create {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseMissing, dbPath)
		}
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		// The file itself comes into existence on the first version-store
		// open; SQLite creates an empty database at user_version 0.
	}

	return &Migrator{
		cfg:    cfg,
		dbPath: dbPath,
		logger: cfg.logger(),
	}, nil
}

// store returns the version store bound to the resolved database file.
func (m *Migrator) store() *VersionStore {
	return &VersionStore{Driver: m.cfg.Driver, Path: m.dbPath}
}

// CurrentVersion reads the database's persisted schema version.
func (m *Migrator) CurrentVersion(ctx context.Context) (int, error) {
	return m.store().Read(ctx)
}

// Catalog scans the timeline directory and returns the available patches.
func (m *Migrator) Catalog() (Catalog, error) {
	return ScanTimeline(m.cfg.TimelineDir)
}

// Migrate brings the database to the highest contiguously-reachable
// version. With a non-empty plan and a positive ExpectedVersion, the run
// fails before any patch executes unless the plan's destination matches.
//
// The stored version is only written after the whole plan has succeeded; a
// failing patch aborts the run with a *PatchError and leaves the version
// at its pre-run value, though the database file itself may be partially
// migrated.
func (m *Migrator) Migrate(ctx context.Context) (*Result, error) {
	if m.cfg.ReadOnly {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, m.dbPath)
	}

	store := m.store()
	current, err := store.Read(ctx)
	if err != nil {
		return nil, err
	}

	catalog, err := m.Catalog()
	if err != nil {
		return nil, err
	}
	plan := catalog.Plan(current)
	destination := catalog.Destination(current)

	if len(plan) > 0 && m.cfg.ExpectedVersion > 0 && destination != m.cfg.ExpectedVersion {
		return nil, &DestinationMismatchError{
			Current:     current,
			Destination: destination,
			Expected:    m.cfg.ExpectedVersion,
		}
	}

	if len(plan) > 0 {
		m.logger.Info("migrating", "database", m.dbPath, "from", current, "to", destination)
		exe := &Executor{
			DatabasePath: m.dbPath,
			TimelineDir:  m.cfg.TimelineDir,
			Debug:        m.cfg.Debug,
			Logger:       m.logger,
		}
		if err := exe.Run(ctx, plan); err != nil {
			return nil, err
		}
	}

	if err := store.Write(ctx, destination); err != nil {
		return nil, err
	}
	return &Result{From: current, To: destination, Applied: plan}, nil
}
