// Package main implements the patchline CLI. It migrates a SQLite database
// through the executable patches found in a timeline directory, tracking
// progress in the database's user_version pragma.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/patchline/patchline"
)

var versionString = patchline.Version

// usage prints the help text.
func usage() {
	header := `Usage:
  patchline [options] [command]

Commands:
  migrate             Apply every pending patch in the timeline (default).
  version             Print the database's current schema version.
  list                List available patches and annotate the current version.
  new                 Scaffold the next empty patch file in the timeline.

Options:`
	fmt.Fprintln(os.Stderr, header)
	flag.PrintDefaults()
}

func main() {
	// Define global flags.
	dbPath := flag.String("db", "", "Path to the SQLite database file. Can also be set via PATCHLINE_DB env var.")
	timelineDir := flag.String("timeline", "timeline", "Directory holding migrate-<N>.pl patch files")
	createFlag := flag.Bool("create", false, "Create the database file (and parent directories) if it does not exist")
	readOnlyFlag := flag.Bool("read-only", false, "Treat the database as read-only; migrate will refuse to run")
	expectFlag := flag.Int("expect", 0, "Fail before running anything unless the plan ends at this version (0 = no check)")
	debugFlag := flag.Bool("debug", false, "Announce each patch and pass its output through to stderr")
	configPath := flag.String("config", "", "Path to JSON configuration file (optional)")
	helpFlag := flag.Bool("help", false, "Show help message")
	versionFlag := flag.Bool("version", false, "Show version")

	flag.Usage = usage
	flag.Parse()

	// Safeguard: check for any flag-like arguments after positional arguments.
	for _, arg := range flag.Args() {
		if strings.HasPrefix(arg, "-") {
			fmt.Fprintln(os.Stderr, "Error: Flags must be specified before the command. Please reorder your arguments.")
			usage()
			os.Exit(1)
		}
	}

	// Process global flags.
	if *helpFlag {
		usage()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Println("patchline version:", versionString)
		os.Exit(0)
	}

	cliConfig := patchline.Config{
		DatabasePath:    *dbPath,
		TimelineDir:     *timelineDir,
		Create:          *createFlag,
		ReadOnly:        *readOnlyFlag,
		ExpectedVersion: *expectFlag,
		Debug:           *debugFlag,
	}
	if *configPath != "" {
		if err := loadConfig(*configPath, &cliConfig); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file: %v\n", err)
			os.Exit(1)
		}
	}
	if cliConfig.DatabasePath == "" {
		cliConfig.DatabasePath = os.Getenv("PATCHLINE_DB")
	}

	command := "migrate"
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
	}

	switch command {
	case "migrate":
		withMigrator(cliConfig, func(m *patchline.Migrator, ctx context.Context) {
			fmt.Printf("[%s] Migrating %s...\n", time.Now().Format(time.Kitchen), cliConfig.DatabasePath)
			res, err := m.Migrate(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
				os.Exit(1)
			}
			if len(res.Applied) == 0 {
				fmt.Printf("[%s] Already at version %d, nothing to apply.\n", time.Now().Format(time.Kitchen), res.To)
				return
			}
			fmt.Printf("[%s] Applied %d patch(es), now at version %d:\n", time.Now().Format(time.Kitchen), len(res.Applied), res.To)
			for _, p := range res.Applied {
				fmt.Printf("  - Version %d: %s\n", p.Version, p.Path)
			}
		})
	case "version":
		withMigrator(cliConfig, func(m *patchline.Migrator, ctx context.Context) {
			current, err := m.CurrentVersion(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading schema version: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(current)
		})
	case "list":
		withMigrator(cliConfig, func(m *patchline.Migrator, ctx context.Context) {
			current, err := m.CurrentVersion(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error reading schema version: %v\n", err)
				os.Exit(1)
			}
			catalog, err := m.Catalog()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error scanning timeline: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Current database schema version: %d\n", current)
			fmt.Println("Available patches:")
			reachable := catalog.Destination(current)
			for _, v := range catalog.Versions() {
				annot := ""
				if v == current {
					annot = " <== current"
				} else if v > reachable {
					annot = " (unreachable: gap before this version)"
				}
				fmt.Printf("Version %d: %s%s\n", v, catalog[v].Path, annot)
			}
		})
	case "new":
		fmt.Printf("[%s] Creating new patch in %s...\n", time.Now().Format(time.Kitchen), cliConfig.TimelineDir)
		path, err := patchline.CreatePatch(cliConfig)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating new patch: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("[%s] New patch created: %s\n", time.Now().Format(time.Kitchen), path)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		usage()
		os.Exit(1)
	}
}

func withMigrator(cliConfig patchline.Config, f func(m *patchline.Migrator, ctx context.Context)) {
	if cliConfig.DatabasePath == "" {
		fmt.Fprintln(os.Stderr, "Error: database path must be provided via -db flag, config file, or PATCHLINE_DB environment variable")
		usage()
		os.Exit(1)
	}

	m, err := patchline.New(cliConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing patchline: %v\n", err)
		os.Exit(1)
	}

	f(m, context.Background())
}

func loadConfig(path string, cfg *patchline.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(cfg)
}
