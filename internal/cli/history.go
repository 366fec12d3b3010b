package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"phonediff/internal/duckdb"
	"phonediff/internal/runner"
)

// runHistory builds the handler for the history command.
func runHistory(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .phonediff/config.yml)")
		dbPath := fs.String("db", "", "DuckDB result database (default: output.database)")
		limit := fs.Int("limit", 20, "Number of runs to list (0 for all)")
		sentence := fs.String("sentence", "", "Show the stored outcomes of this sentence")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		path := *dbPath
		if path == "" {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
				return ExitError
			}
			path = cfg.Output.Database
		}
		if path == "" {
			fmt.Fprintln(stderr, "Missing --db (no output.database configured)")
			return ExitUsage
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Fprintf(stderr, "Database not found: %v\n", err)
			return ExitError
		}

		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		db, err := duckdb.Open(ctx, path)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to open database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
		if text := strings.TrimSpace(*sentence); text != "" {
			entries, err := duckdb.SentenceHistory(ctx, db, runner.Fingerprint(text))
			if err != nil {
				fmt.Fprintf(stderr, "History failed: %v\n", err)
				return ExitError
			}
			if len(entries) == 0 {
				fmt.Fprintln(stdout, "No stored mismatches for this sentence.")
				return ExitOK
			}
			fmt.Fprintln(tw, "RUN\tSTARTED\tFILE\tOUTCOME")
			for _, e := range entries {
				fmt.Fprintf(tw, "%s\t%s\t%s#%d\t%s\n", e.RunID, formatTime(e.StartedAt), filepath.Base(e.Path), e.Index, e.Outcome)
			}
			_ = tw.Flush()
			return ExitOK
		}

		runs, err := duckdb.ListRuns(ctx, db, *limit)
		if err != nil {
			fmt.Fprintf(stderr, "History failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tPIPELINES\tMATCH\tLIGHT\tFATAL\tERROR")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s vs %s\t%d\t%d\t%d\t%d\n",
				r.RunID, formatTime(r.StartedAt), r.Status, r.PipelineA, r.PipelineB,
				r.Totals.Matches, r.Totals.Light, r.Totals.Fatal, r.Totals.Errors)
		}
		_ = tw.Flush()
		return ExitOK
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
