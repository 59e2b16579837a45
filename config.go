package patchline

import (
	"io"
	"log/slog"
)

// Config holds settings for a migration run.
type Config struct {
	// DatabasePath is the SQLite database file to migrate.
	DatabasePath string

	// TimelineDir is the directory holding migrate-<N>.pl patch files.
	TimelineDir string

	// Create allows the database file (and its parent directories) to be
	// created when it does not exist yet.
	Create bool

	// ReadOnly marks the database as not to be written. Migrations are
	// incompatible with read-only mode and fail before touching anything;
	// version reads still work. Cannot be combined with Create.
	ReadOnly bool

	// ExpectedVersion, when positive, is the schema version the migration
	// plan must end at. A non-empty plan with a different destination fails
	// before any patch runs. Zero or negative means no expectation.
	ExpectedVersion int

	// Driver is the database/sql driver name used for the version store.
	// The caller is responsible for registering it (default "sqlite3").
	Driver string

	// Debug announces each patch before it runs and passes the patch's own
	// output through to the error stream instead of discarding it.
	Debug bool

	// Logger receives patch announcements and progress records. When nil,
	// Debug mode falls back to slog.Default and quiet mode discards.
	Logger *slog.Logger
}

// DefaultConfig provides default values for configuration.
var DefaultConfig = Config{
	Driver: "sqlite3",
}

// withDefaults returns cfg with zero-valued fields filled in from
// DefaultConfig.
func (cfg Config) withDefaults() Config {
	if cfg.Driver == "" {
		cfg.Driver = DefaultConfig.Driver
	}
	return cfg
}

// logger resolves the logger the engine records through.
func (cfg Config) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg.Debug {
		return slog.Default()
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
