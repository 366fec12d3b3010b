package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"phonediff/internal/reportserver"
)

// serveReport is a test seam for running the report server.
var serveReport = reportserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .phonediff/config.yml)")
		resultsDir := fs.String("results-dir", "", "Directory containing runs (default: output.results_dir)")
		addr := fs.String("addr", "127.0.0.1:5000", "Address to listen on")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}
		if *addr == "" {
			fmt.Fprintln(stderr, "Missing --addr")
			return ExitUsage
		}

		cfg, dir, err := resolveResultsDir(*resultsDir, *configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to resolve results: %v\n", err)
			return ExitError
		}
		if dir == "" {
			fmt.Fprintln(stderr, "Missing --results-dir (no output.results_dir configured)")
			return ExitUsage
		}
		serverCfg := reportserver.Config{Addr: *addr, ResultsDir: dir}
		if db := cfg.Output.Database; db != "" {
			if _, err := os.Stat(db); err == nil {
				serverCfg.DBPath = db
			}
		}

		ctx, stop := notifyContext(context.Background())
		defer stop()
		fmt.Fprintf(stdout, "Serving reports at http://%s\n", serverCfg.Addr)
		if err := serveReport(ctx, serverCfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
