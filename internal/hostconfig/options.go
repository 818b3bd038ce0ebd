// Package hostconfig parses the host's CLI surface (spec §6.2) into a
// plain option struct, the same thin-driver shape zeonica's
// samples/*/main.go uses ahead of its own Builder wiring - no CLI
// framework, just stdlib flag plus a case-insensitive verbosity parser
// (see DESIGN.md for why flag, not a third-party CLI library).
package hostconfig

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/archipelago-host/archi/internal/archilog"
)

// Options is the host's fully-parsed command line (spec §6.2).
type Options struct {
	Blobs      []string   // positional args, in replay order
	DryRun     bool       // --dry-run / -n
	NoLogo     bool       // --no-logo / -L
	NoColor    bool       // --no-color / -m
	Verbosity  slog.Level // --verbose [LEVEL] / -v, default Info
	ProfileOut string     // --profile PATH
	AuditDB    string     // --audit-db PATH
	Stats      bool       // --stats
}

// Parse parses args (excluding the program name) into Options.
func Parse(args []string) (Options, error) {
	fs := flag.NewFlagSet("archi", flag.ContinueOnError)

	dryRun := fs.Bool("dry-run", false, "replay without executing (report only)")
	fs.BoolVar(dryRun, "n", false, "shorthand for --dry-run")
	noLogo := fs.Bool("no-logo", false, "suppress the boot banner")
	fs.BoolVar(noLogo, "L", false, "shorthand for --no-logo")
	noColor := fs.Bool("no-color", false, "disable ANSI colored log output")
	fs.BoolVar(noColor, "m", false, "shorthand for --no-color")
	verbose := fs.String("verbose", "info", "log verbosity: quiet|error|warning|notice|info|debug|max or 0-6")
	fs.StringVar(verbose, "v", "info", "shorthand for --verbose")
	profile := fs.String("profile", "", "write a pprof profile of per-blob replay time to PATH")
	auditDB := fs.String("audit-db", "", "record every replay step to a sqlite database at PATH")
	stats := fs.Bool("stats", false, "log a host resource snapshot at boot")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}

	caser := cases.Fold()
	lvl, ok := archilog.ParseLevel(caser.String(strings.TrimSpace(*verbose)))
	if !ok {
		return Options{}, fmt.Errorf("hostconfig: unrecognised verbosity %q", *verbose)
	}

	return Options{
		Blobs:      fs.Args(),
		DryRun:     *dryRun,
		NoLogo:     *noLogo,
		NoColor:    *noColor,
		Verbosity:  lvl,
		ProfileOut: *profile,
		AuditDB:    *auditDB,
		Stats:      *stats,
	}, nil
}
