package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"phonediff/internal/runner"
)

// LatestRef resolves to the most recent run in the results directory.
const LatestRef = "latest"

// ErrRunNotFound is returned when a run reference does not resolve.
var ErrRunNotFound = errors.New("report: run not found")

// resultsFiles lists the accepted results file names in lookup order.
var resultsFiles = []string{runner.ResultsFile, runner.ResultsFileGzip, runner.ResultsFileZstd}

// LoadResults reads a results file, decompressing by extension.
func LoadResults(path string) (runner.Results, error) {
	file, err := os.Open(path)
	if err != nil {
		return runner.Results{}, err
	}
	defer file.Close()

	var r io.Reader = file
	switch {
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(file)
		if err != nil {
			return runner.Results{}, fmt.Errorf("open gzip %s: %w", filepath.Base(path), err)
		}
		defer gz.Close()
		r = gz
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(file)
		if err != nil {
			return runner.Results{}, fmt.Errorf("open zstd %s: %w", filepath.Base(path), err)
		}
		defer dec.Close()
		r = dec
	}

	var results runner.Results
	if err := json.NewDecoder(r).Decode(&results); err != nil {
		return runner.Results{}, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return results, nil
}

// ResolveRun loads the run named by ref. ref may be a results file, a run
// directory, a run id under resultsDir, or "latest". It returns the results
// and the path they were loaded from.
func ResolveRun(resultsDir, ref string) (runner.Results, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return runner.Results{}, "", fmt.Errorf("run ref is required")
	}
	if info, err := os.Stat(ref); err == nil {
		path := ref
		if info.IsDir() {
			path, err = findResultsFile(ref)
			if err != nil {
				return runner.Results{}, "", err
			}
		}
		results, err := LoadResults(path)
		return results, path, err
	}
	if resultsDir == "" {
		return runner.Results{}, "", fmt.Errorf("%w: %s (no results directory)", ErrRunNotFound, ref)
	}
	runID := ref
	if ref == LatestRef {
		runs, err := ListRuns(resultsDir)
		if err != nil {
			return runner.Results{}, "", err
		}
		if len(runs) == 0 {
			return runner.Results{}, "", fmt.Errorf("%w: no runs in %s", ErrRunNotFound, resultsDir)
		}
		runID = runs[len(runs)-1]
	}
	return LoadRun(resultsDir, runID)
}

// LoadRun loads a run by id from resultsDir only.
func LoadRun(resultsDir, runID string) (runner.Results, string, error) {
	if runID == "" || runID != filepath.Base(runID) || strings.HasPrefix(runID, ".") {
		return runner.Results{}, "", fmt.Errorf("%w: invalid run id %q", ErrRunNotFound, runID)
	}
	path, err := findResultsFile(filepath.Join(resultsDir, runID))
	if err != nil {
		return runner.Results{}, "", err
	}
	results, err := LoadResults(path)
	return results, path, err
}

// ListRuns returns the ids of runs under resultsDir that hold a results
// file, oldest first. Run ids start with a UTC timestamp so name order is
// chronological.
func ListRuns(resultsDir string) ([]string, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	runs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := findResultsFile(filepath.Join(resultsDir, entry.Name())); err == nil {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

func findResultsFile(runDir string) (string, error) {
	for _, name := range resultsFiles {
		path := filepath.Join(runDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: no results file in %s", ErrRunNotFound, runDir)
}
