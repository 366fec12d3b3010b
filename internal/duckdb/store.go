package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"phonediff/internal/runner"
)

// ErrRunExists is returned when a run id has already been written.
var ErrRunExists = errors.New("duckdb: run already stored")

// PipelinesKey fingerprints a pipeline pair so runs comparing the same
// pipelines can be grouped.
func PipelinesKey(pair runner.PipelinePair) (string, error) {
	return FingerprintJSON(pair)
}

// WriteResults stores one run with its files and non-matching sentences in
// a single transaction.
func WriteResults(ctx context.Context, db *sql.DB, results runner.Results) error {
	if ctx == nil {
		return errors.New("duckdb: context is nil")
	}
	if db == nil {
		return errors.New("duckdb: db is nil")
	}
	if strings.TrimSpace(results.RunID) == "" {
		return errors.New("duckdb: run id is empty")
	}
	key, err := PipelinesKey(results.Pipelines)
	if err != nil {
		return fmt.Errorf("pipelines key: %w", err)
	}

	var existing int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE run_id = ?", results.RunID).Scan(&existing); err != nil {
		return fmt.Errorf("lookup run: %w", err)
	}
	if existing > 0 {
		return fmt.Errorf("%w: %s", ErrRunExists, results.RunID)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	totals := results.Totals
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (run_id, status, started_at, finished_at, pipeline_a, pipeline_a_kind,
		   pipeline_b, pipeline_b_kind, pipelines_key, matches, light_mismatches, fatal_mismatches, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		results.RunID,
		results.Status,
		nullableTime(results.StartedAt),
		nullableTime(results.FinishedAt),
		results.Pipelines.A.ID,
		nullableString(results.Pipelines.A.Kind),
		results.Pipelines.B.ID,
		nullableString(results.Pipelines.B.Kind),
		key,
		totals.Matches,
		totals.Light,
		totals.Fatal,
		totals.Errors,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range results.Files {
		if err := insertFile(ctx, tx, results.RunID, file); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertFile(ctx context.Context, tx *sql.Tx, runID string, file runner.FileResult) error {
	fileID := uuid.NewString()
	c := file.Counters
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO files (file_id, run_id, path, status, error, sentences, matches, light_mismatches, fatal_mismatches, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (run_id, path) DO NOTHING`,
		fileID,
		runID,
		file.Path,
		file.Status,
		nullableString(file.Error),
		file.Sentences,
		c.Matches,
		c.Light,
		c.Fatal,
		c.Errors,
	); err != nil {
		return fmt.Errorf("insert file %s: %w", file.Path, err)
	}
	for _, s := range file.Findings {
		if err := insertSentence(ctx, tx, runID, fileID, s); err != nil {
			return fmt.Errorf("insert sentence %s#%d: %w", file.Path, s.Index, err)
		}
	}
	return nil
}

func insertSentence(ctx context.Context, tx *sql.Tx, runID, fileID string, s runner.SentenceResult) error {
	sentenceKey := s.Fingerprint
	if sentenceKey == "" {
		sentenceKey = runner.Fingerprint(s.Text)
	}
	var verdict any
	if s.Verdict != nil {
		canonical, err := CanonicalJSON(s.Verdict)
		if err != nil {
			return err
		}
		verdict = string(canonical)
	}
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO sentences (sentence_id, file_id, run_id, sentence_key, idx, text, outcome,
		   tokens_a, tokens_b, verdict, error_a, error_b)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (file_id, idx) DO NOTHING`,
		uuid.NewString(),
		fileID,
		runID,
		sentenceKey,
		s.Index,
		s.Text,
		string(s.Outcome),
		joinTokens(s.A),
		joinTokens(s.B),
		verdict,
		nullableString(s.ErrorA),
		nullableString(s.ErrorB),
	)
	return err
}

// joinTokens stores a sequence as space separated tokens; tokens never
// contain whitespace. A nil sequence is stored as NULL.
func joinTokens(tokens []string) any {
	if tokens == nil {
		return nil
	}
	return strings.Join(tokens, " ")
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.UTC()
}
