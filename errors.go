package patchline

import (
	"errors"
	"fmt"
)

// ErrDatabaseMissing reports a database file that does not exist while
// Config.Create is false.
var ErrDatabaseMissing = errors.New("database file does not exist")

// ErrReadOnly reports a migration attempt against a database configured as
// read-only.
var ErrReadOnly = errors.New("cannot migrate a read-only database")

// DuplicatePatchError reports two timeline files resolving to the same
// patch version, e.g. migrate-7.pl and migrate-07.pl.
type DuplicatePatchError struct {
	Version int
	First   string
	Second  string
}

func (e *DuplicatePatchError) Error() string {
	return fmt.Sprintf("duplicate patch for version %d: %s and %s", e.Version, e.First, e.Second)
}

// DestinationMismatchError reports a migration plan whose destination
// differs from the caller-declared expected version. It is raised before
// any patch executes; the database is untouched.
type DestinationMismatchError struct {
	Current     int
	Destination int
	Expected    int
}

func (e *DestinationMismatchError) Error() string {
	return fmt.Sprintf("plan reaches version %d from %d, expected %d; no patches were run",
		e.Destination, e.Current, e.Expected)
}

// PatchError reports a patch process that exited unsuccessfully. The plan
// halts at that patch, the stored version stays at its pre-run value, and
// the database file itself is in an unknown, possibly partially-migrated
// state.
type PatchError struct {
	Patch Patch
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %s (version %d) failed: %v; database left in an unknown intermediate state",
		e.Patch.Path, e.Patch.Version, e.Err)
}

func (e *PatchError) Unwrap() error { return e.Err }
