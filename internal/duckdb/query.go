package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"phonediff/internal/runner"
)

// RunSummary is one row of the runs table.
type RunSummary struct {
	RunID     string
	Status    string
	StartedAt time.Time
	PipelineA string
	PipelineB string
	Totals    runner.Counters
}

// HistoryEntry is one stored outcome of a sentence.
type HistoryEntry struct {
	RunID     string
	StartedAt time.Time
	Path      string
	Index     int
	Outcome   runner.Outcome
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]RunSummary, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	query := `SELECT run_id, status, started_at, pipeline_a, pipeline_b,
	            matches, light_mismatches, fatal_mismatches, errors
	          FROM runs
	          ORDER BY started_at DESC NULLS LAST, run_id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			summary RunSummary
			started sql.NullTime
		)
		if err := rows.Scan(
			&summary.RunID,
			&summary.Status,
			&started,
			&summary.PipelineA,
			&summary.PipelineB,
			&summary.Totals.Matches,
			&summary.Totals.Light,
			&summary.Totals.Fatal,
			&summary.Totals.Errors,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if started.Valid {
			summary.StartedAt = started.Time
		}
		out = append(out, summary)
	}
	return out, rows.Err()
}

// SentenceHistory lists every stored non-matching outcome of the sentence
// with the given fingerprint, oldest run first. Runs in which the sentence
// matched exactly do not appear.
func SentenceHistory(ctx context.Context, db *sql.DB, sentenceKey string) ([]HistoryEntry, error) {
	if db == nil {
		return nil, errors.New("duckdb: db is nil")
	}
	rows, err := db.QueryContext(
		ctx,
		`SELECT run_id, started_at, path, idx, outcome
		 FROM v_sentence_history
		 WHERE sentence_key = ?
		 ORDER BY started_at NULLS FIRST, run_id, path, idx`,
		sentenceKey,
	)
	if err != nil {
		return nil, fmt.Errorf("sentence history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			entry   HistoryEntry
			started sql.NullTime
			outcome string
		)
		if err := rows.Scan(&entry.RunID, &started, &entry.Path, &entry.Index, &outcome); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		if started.Valid {
			entry.StartedAt = started.Time
		}
		entry.Outcome = runner.Outcome(outcome)
		out = append(out, entry)
	}
	return out, rows.Err()
}
