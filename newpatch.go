package patchline

import (
	"fmt"
	"os"
	"path/filepath"
)

// patchTemplate is the scaffold for a new patch. The first stdin line is
// the absolute database path; everything else is up to the patch author.
const patchTemplate = `#!/usr/bin/env perl
use strict;
use warnings;

chomp(my $db = <STDIN>);

# Apply the schema change for this version against $db, then exit 0.
die "patch not implemented\n";
`

// CreatePatch scaffolds the next patch file in cfg.TimelineDir, named
// migrate-<NN>.pl with the version one past the catalog's current maximum,
// zero-padded to two digits. The file is created executable and an
// existing file is never overwritten. It returns the path of the new file.
func CreatePatch(cfg Config) (string, error) {
	cfg = cfg.withDefaults()
	if cfg.TimelineDir == "" {
		return "", fmt.Errorf("no timeline directory configured")
	}

	catalog, err := ScanTimeline(cfg.TimelineDir)
	if err != nil {
		return "", err
	}
	next := catalog.MaxVersion() + 1

	name := fmt.Sprintf("migrate-%02d.pl", next)
	path := filepath.Join(cfg.TimelineDir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o755)
	if err != nil {
		return "", fmt.Errorf("creating patch file %s: %w", path, err)
	}
	if _, err := f.WriteString(patchTemplate); err != nil {
		f.Close()
		return "", fmt.Errorf("writing patch file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing patch file %s: %w", path, err)
	}
	return path, nil
}
