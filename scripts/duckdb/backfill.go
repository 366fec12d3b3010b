// Command backfill loads every run stored under a results directory into a
// DuckDB database. Runs already in the database are left alone.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"phonediff/internal/duckdb"
	"phonediff/internal/report"
)

func main() {
	resultsDir := flag.String("results-dir", "", "directory containing run folders")
	outPath := flag.String("out", "", "output duckdb file path")
	flag.Parse()
	if *resultsDir == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: backfill --results-dir <dir> --out <duckdb file>")
		os.Exit(2)
	}
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir output dir: %v\n", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	stored, err := backfill(ctx, *resultsDir, *outPath, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stored %d runs in %s\n", stored, *outPath)
}

func backfill(ctx context.Context, resultsDir, dbPath string, out io.Writer) (int, error) {
	runIDs, err := report.ListRuns(resultsDir)
	if err != nil {
		return 0, err
	}
	db, err := duckdb.Open(ctx, dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	stored := 0
	for _, runID := range runIDs {
		results, _, err := report.LoadRun(resultsDir, runID)
		if err != nil {
			return stored, err
		}
		err = duckdb.WriteResults(ctx, db, results)
		switch {
		case errors.Is(err, duckdb.ErrRunExists):
			fmt.Fprintf(out, "skip %s: already stored\n", runID)
		case err != nil:
			return stored, fmt.Errorf("store %s: %w", runID, err)
		default:
			stored++
			fmt.Fprintf(out, "stored %s\n", runID)
		}
	}
	return stored, nil
}
