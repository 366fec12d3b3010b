package reportserver

import (
	"errors"
	"log/slog"
	"net/http"

	"phonediff/internal/report"
)

// NewHandler builds the HTTP handler: an index of runs at "/", one report
// per run under "/runs/{id}" and, when configured, the result database.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.ResultsDir == "" {
		return nil, errors.New("reportserver: results dir is required")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", serveIndex(cfg.ResultsDir))
	mux.HandleFunc("GET /runs/{id}", serveRun(cfg.ResultsDir))
	if cfg.DBPath != "" {
		mux.Handle("/data/results.duckdb", serveDatabase(cfg.DBPath))
	}
	return mux, nil
}

// serveIndex lists the runs found in the results directory.
func serveIndex(resultsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := report.ListRuns(resultsDir)
		if err != nil {
			slog.Error("list runs", "dir", resultsDir, "error", err)
			http.Error(w, "cannot list runs", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.IndexPage(runs, "/runs/").Render(r.Context(), w); err != nil {
			slog.Warn("render index", "error", err)
		}
	}
}

// serveRun renders the report for a single run id.
func serveRun(resultsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		results, _, err := report.LoadRun(resultsDir, id)
		if err != nil {
			if errors.Is(err, report.ErrRunNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.Error("load run", "run_id", id, "error", err)
			http.Error(w, "cannot load run", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := report.ReportPage(results).Render(r.Context(), w); err != nil {
			slog.Warn("render run", "run_id", id, "error", err)
		}
	}
}

// serveDatabase serves the DuckDB file from disk.
func serveDatabase(dbPath string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/octet-stream")
		http.ServeFile(w, r, dbPath)
	})
}
