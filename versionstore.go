package patchline

import (
	"context"
	"database/sql"
	"fmt"
)

// VersionStore reads and writes the schema version persisted inside a
// SQLite database file, using the user_version pragma rather than a user
// table. A fresh database reads as version 0.
//
// Each operation opens its own connection and closes it before returning,
// so the file is never held open across patch execution.
type VersionStore struct {
	// Driver is the database/sql driver name, e.g. "sqlite3".
	Driver string

	// Path is the database file location.
	Path string
}

// Read returns the persisted schema version. Opening the connection
// creates the database file when it does not exist yet, in which case the
// version is 0.
func (s *VersionStore) Read(ctx context.Context) (int, error) {
	db, err := sql.Open(s.Driver, s.Path)
	if err != nil {
		return 0, fmt.Errorf("opening database %s: %w", s.Path, err)
	}
	defer db.Close()

	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version of %s: %w", s.Path, err)
	}
	return version, nil
}

// Write persists version. Call it only after every patch in the plan has
// succeeded.
func (s *VersionStore) Write(ctx context.Context, version int) error {
	if version < 0 {
		return fmt.Errorf("schema version must be non-negative, got %d", version)
	}
	db, err := sql.Open(s.Driver, s.Path)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", s.Path, err)
	}
	defer db.Close()

	// Pragma statements take no bind parameters; version is a checked
	// integer, not caller text.
	if _, err := db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
		return fmt.Errorf("writing schema version %d to %s: %w", version, s.Path, err)
	}
	return nil
}
