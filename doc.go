// SPDX-License-Identifier: MIT

// Package patchline brings a SQLite database forward through an ordered
// timeline of schema patches.  Each patch is an independently executable
// program named migrate-<N>.pl that transitions the schema from version
// N-1 to version N; the current version lives in the database file itself,
// in SQLite's user_version pragma.
//
// The engine scans a timeline directory, computes the contiguous run of
// patches needed from the current version, optionally checks the run's
// destination against a caller-declared expected version, and executes the
// patches one at a time as child processes.  A companion CLI lives under
// cmd/patchline; the core logic is here.
//
// # Install
//
//	go get github.com/patchline/patchline@latest
//
// # Quick start
//
//	import (
//	    "context"
//
//	    _ "github.com/mattn/go-sqlite3"
//	    "github.com/patchline/patchline"
//	)
//
//	func main() {
//	    cfg := patchline.Config{
//	        DatabasePath: "app.db",
//	        TimelineDir:  "timeline",
//	        Create:       true,
//	    }
//	    m, _ := patchline.New(cfg)
//	    m.Migrate(context.Background())
//	}
//
// # Configuration
//
// Use Config to tweak behaviour:
//
//   - DatabasePath    — path to the SQLite database file
//   - TimelineDir     — directory holding migrate-<N>.pl patch files
//   - Create          — create the database (and parent dirs) if absent
//   - ReadOnly        — refuse to migrate; version reads still work
//   - ExpectedVersion — fail before running anything unless the plan ends here
//   - Driver          — database/sql driver name (default "sqlite3")
//   - Debug           — announce each patch and pass its output through
//
// # Patch contract
//
// A patch is invoked with its working directory set to the timeline
// directory so it can reference sibling resource files.  It receives
// exactly one line on standard input (the absolute path to the database)
// and reports success or failure through its exit status.  What it does in
// between is its own business; the engine never reads patch content.
//
// Patches must apply in strict version order, so a gap in the timeline
// stops the plan even when higher-numbered patches exist.  When a patch
// fails mid-plan the engine stops immediately, leaves the stored version
// untouched, and makes no rollback attempt: patches may contain DDL that
// cannot be transactionally undone, so recovery is the operator's call.
//
// # Programmatic API
//
//	New(cfg)                        → *Migrator
//	(*Migrator).Migrate(ctx)        → *Result, error
//	(*Migrator).CurrentVersion(ctx) → int, error
//	(*Migrator).Catalog()           → Catalog, error
//	CreatePatch(cfg)                → string, error
//
// All blocking operations are context-aware.  The engine imposes no
// timeout of its own: a hung patch blocks the migration indefinitely.
//
// # Concurrency
//
// One migration, one process.  The engine takes no cross-process lock on
// the database file; running two migrations against the same file at once
// is unsupported.
//
// # Versioning
//
// A semantic version string is exposed as:
//
//	var Version = "vX.Y.Z"
//
// Embed it in your own commands to surface patchline's build version.
package patchline
