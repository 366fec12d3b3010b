package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"phonediff/internal/report"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .phonediff/config.yml)")
		resultsDir := fs.String("results-dir", "", "Directory containing runs (default: output.results_dir)")
		outputPath := fs.String("output", "", "Report output path (default: report.html in the run directory)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		ref := fs.Arg(0)
		if ref == "" {
			ref = report.LatestRef
		}

		_, dir, err := resolveResultsDir(*resultsDir, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve results: %v\n", err)
			return ExitError
		}
		results, resultsPath, err := report.ResolveRun(dir, ref)
		if err != nil {
			fmt.Fprintf(stderr, "Run not found: %v\n", err)
			return ExitError
		}
		reportPath := *outputPath
		if reportPath == "" {
			reportPath = filepath.Join(filepath.Dir(resultsPath), "report.html")
		}
		if err := report.WriteHTML(context.Background(), reportPath, results); err != nil {
			fmt.Fprintf(stderr, "Failed to write report: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Report written to %s\n", reportPath)
		return ExitOK
	}
}
