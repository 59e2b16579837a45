package patchline_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/patchline/patchline"
)

// writePatch writes an executable shell-script patch into dir. Patches are
// plain executables as far as the engine is concerned; shell keeps the
// tests self-contained.
func writePatch(t *testing.T, dir, name, body string) {
	t.Helper()
	script := "#!/bin/sh\n" + body
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

// scanPlan scans dir and returns the plan from version current.
func scanPlan(t *testing.T, dir string, current int) []patchline.Patch {
	t.Helper()
	catalog, err := patchline.ScanTimeline(dir)
	require.NoError(t, err)
	return catalog.Plan(current)
}

func TestExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("patches receive the database path on stdin and run in order", func(t *testing.T) {
		dir := t.TempDir()
		// ran.txt is written by relative path, proving the working
		// directory is the timeline directory.
		writePatch(t, dir, "migrate-1.pl", "read db\necho \"1 $db\" >> ran.txt\n")
		writePatch(t, dir, "migrate-2.pl", "read db\necho \"2 $db\" >> ran.txt\n")

		dbPath := filepath.Join(t.TempDir(), "app.db")
		exe := &patchline.Executor{DatabasePath: dbPath, TimelineDir: dir}
		require.NoError(t, exe.Run(ctx, scanPlan(t, dir, 0)))

		out, err := os.ReadFile(filepath.Join(dir, "ran.txt"))
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Equal(t, []string{"1 " + dbPath, "2 " + dbPath}, lines)
	})

	t.Run("first failure aborts the rest", func(t *testing.T) {
		dir := t.TempDir()
		writePatch(t, dir, "migrate-1.pl", "read db\necho 1 >> ran.txt\n")
		writePatch(t, dir, "migrate-2.pl", "read db\nexit 3\n")
		writePatch(t, dir, "migrate-3.pl", "read db\necho 3 >> ran.txt\n")

		exe := &patchline.Executor{
			DatabasePath: filepath.Join(t.TempDir(), "app.db"),
			TimelineDir:  dir,
		}
		err := exe.Run(ctx, scanPlan(t, dir, 0))

		var pe *patchline.PatchError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, 2, pe.Patch.Version)
		require.Contains(t, err.Error(), "unknown intermediate state")

		out, readErr := os.ReadFile(filepath.Join(dir, "ran.txt"))
		require.NoError(t, readErr)
		require.Equal(t, "1\n", string(out), "patch 3 must never run")
	})

	t.Run("debug mode passes patch output through", func(t *testing.T) {
		dir := t.TempDir()
		writePatch(t, dir, "migrate-1.pl", "read db\necho diagnostics >&2\n")

		var captured bytes.Buffer
		exe := &patchline.Executor{
			DatabasePath: filepath.Join(t.TempDir(), "app.db"),
			TimelineDir:  dir,
			Debug:        true,
			DebugOut:     &captured,
		}
		require.NoError(t, exe.Run(ctx, scanPlan(t, dir, 0)))
		require.Contains(t, captured.String(), "diagnostics")
	})

	t.Run("quiet mode suppresses patch output", func(t *testing.T) {
		dir := t.TempDir()
		writePatch(t, dir, "migrate-1.pl", "read db\necho diagnostics >&2\n")

		var captured bytes.Buffer
		exe := &patchline.Executor{
			DatabasePath: filepath.Join(t.TempDir(), "app.db"),
			TimelineDir:  dir,
			DebugOut:     &captured,
		}
		require.NoError(t, exe.Run(ctx, scanPlan(t, dir, 0)))
		require.Empty(t, captured.String())
	})

	t.Run("missing executable is a patch error", func(t *testing.T) {
		exe := &patchline.Executor{
			DatabasePath: filepath.Join(t.TempDir(), "app.db"),
			TimelineDir:  t.TempDir(),
		}
		err := exe.Run(ctx, []patchline.Patch{{Version: 1, Path: "/no/such/patch"}})
		var pe *patchline.PatchError
		require.ErrorAs(t, err, &pe)
	})
}
