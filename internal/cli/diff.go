package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"phonediff/internal/report"
)

// runDiff builds the handler for the diff command.
func runDiff(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .phonediff/config.yml)")
		resultsDir := fs.String("results-dir", "", "Directory containing runs (default: output.results_dir)")
		failOnRegression := fs.Bool("fail-on-regression", false, "Exit 1 when any sentence got worse")
		asJSON := fs.Bool("json", false, "Print the diff as JSON")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() != 2 {
			fmt.Fprintln(stderr, "Expected <base-run> and <head-run>")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		_, dir, err := resolveResultsDir(*resultsDir, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve results: %v\n", err)
			return ExitError
		}
		base, _, err := report.ResolveRun(dir, fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Base run not found: %v\n", err)
			return ExitError
		}
		head, _, err := report.ResolveRun(dir, fs.Arg(1))
		if err != nil {
			fmt.Fprintf(stderr, "Head run not found: %v\n", err)
			return ExitError
		}

		d := report.Compare(base, head)
		if *asJSON {
			encoder := json.NewEncoder(stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(d); err != nil {
				fmt.Fprintf(stderr, "Failed to encode diff: %v\n", err)
				return ExitError
			}
		} else {
			report.WriteDiff(stdout, d)
		}
		if *failOnRegression && d.Regressions() > 0 {
			return ExitError
		}
		return ExitOK
	}
}
