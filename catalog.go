package patchline

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

// Patch is a single executable schema patch. It transitions the database
// from Version-1 to Version.
type Patch struct {
	// Version is the schema version the patch transitions the database to.
	Version int

	// Path is the absolute location of the patch executable.
	Path string
}

// Catalog is a sparse mapping from target version to patch. Versions need
// not be contiguous; the plan derived from a catalog always is.
type Catalog map[int]Patch

// patchName matches timeline entries that count as patches. The digits
// form a base-10 version; leading zeros are permitted (migrate-07.pl is
// version 7).
var patchName = regexp.MustCompile(`^migrate-([0-9]+)\.pl$`)

// ScanTimeline enumerates the immediate entries of dir and registers every
// file matching migrate-<N>.pl under its parsed version. Non-matching
// entries are ignored. Entries are processed in lexical order and a second
// file claiming an already-registered version is a hard error, so the
// outcome never depends on directory-listing order.
func ScanTimeline(dir string) (Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading timeline directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	catalog := make(Catalog)
	for _, name := range names {
		m := patchName.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		version, err := strconv.Atoi(m[1])
		if err != nil {
			// Digits beyond the int range; not a usable patch version.
			continue
		}
		path, err := filepath.Abs(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if prev, exists := catalog[version]; exists {
			return nil, &DuplicatePatchError{
				Version: version,
				First:   prev.Path,
				Second:  path,
			}
		}
		catalog[version] = Patch{Version: version, Path: path}
	}
	return catalog, nil
}

// MaxVersion returns the highest version present in the catalog, or 0 for
// an empty catalog.
func (c Catalog) MaxVersion() int {
	max := 0
	for v := range c {
		if v > max {
			max = v
		}
	}
	return max
}

// Versions returns the catalog's versions in ascending order.
func (c Catalog) Versions() []int {
	versions := make([]int, 0, len(c))
	for v := range c {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	return versions
}
