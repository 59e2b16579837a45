package patchline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Executor runs planned patches one at a time as child processes. A patch
// receives the absolute database path as a single newline-terminated line
// on standard input, runs with the timeline directory as its working
// directory, and signals the outcome through its exit status.
//
// Patch i+1 never starts unless patch i succeeded. The first failure
// aborts the run with a *PatchError and no rollback is attempted.
type Executor struct {
	// DatabasePath is the absolute path handed to each patch on stdin.
	DatabasePath string

	// TimelineDir is the working directory for every patch, so patches can
	// reference sibling resource files by relative path.
	TimelineDir string

	// Debug announces each patch before it runs and passes the patch's own
	// output through to DebugOut instead of discarding it.
	Debug bool

	// DebugOut receives patch output in debug mode (default os.Stderr).
	DebugOut io.Writer

	// Logger records patch announcements. When nil nothing is recorded.
	Logger *slog.Logger
}

// Run executes plan in order, stopping at the first failure.
func (e *Executor) Run(ctx context.Context, plan []Patch) error {
	for _, patch := range plan {
		if err := e.run(ctx, patch); err != nil {
			return &PatchError{Patch: patch, Err: err}
		}
	}
	return nil
}

func (e *Executor) run(ctx context.Context, patch Patch) error {
	if e.Debug && e.Logger != nil {
		e.Logger.Info("running patch", "version", patch.Version, "path", patch.Path)
	}

	out := io.Discard
	if e.Debug {
		out = e.DebugOut
		if out == nil {
			out = os.Stderr
		}
	}

	cmd := exec.CommandContext(ctx, patch.Path)
	cmd.Dir = e.TimelineDir
	cmd.Stdin = strings.NewReader(e.DatabasePath + "\n")
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
