package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"phonediff/internal/phoneme"
)

// Run and file status values.
const (
	StatusComplete    = "complete"
	StatusAborted     = "aborted"
	StatusInterrupted = "interrupted"

	FileOK        = "ok"
	FileReadError = "read_error"
)

// Results is the persisted record of one run.
type Results struct {
	RunID      string       `json:"run_id"`
	Status     string       `json:"status"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Pipelines  PipelinePair `json:"pipelines"`
	Files      []FileResult `json:"files"`
	Totals     Counters     `json:"totals"`
}

// PipelinePair identifies the compared pipelines.
type PipelinePair struct {
	A PipelineInfo `json:"a"`
	B PipelineInfo `json:"b"`
}

// PipelineInfo describes one pipeline.
type PipelineInfo struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
}

// FileResult summarizes one input file. Findings hold every sentence that
// was not an exact match, in input order.
type FileResult struct {
	Path      string           `json:"path"`
	Status    string           `json:"status"`
	Error     string           `json:"error,omitempty"`
	Sentences int              `json:"sentences"`
	Counters  Counters         `json:"counters"`
	Findings  []SentenceResult `json:"findings"`
}

// SentenceResult is the outcome for one sentence.
type SentenceResult struct {
	Index       int              `json:"index"`
	Text        string           `json:"text"`
	Fingerprint string           `json:"fingerprint"`
	Outcome     Outcome          `json:"outcome"`
	A           phoneme.Sequence `json:"a,omitempty"`
	B           phoneme.Sequence `json:"b,omitempty"`
	Verdict     *phoneme.Verdict `json:"verdict,omitempty"`
	ErrorA      string           `json:"error_a,omitempty"`
	ErrorB      string           `json:"error_b,omitempty"`
}

// Fingerprint returns the hex SHA-256 of a sentence, used as a stable key
// across runs.
func Fingerprint(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// FailedFiles lists files that could not be read.
func (r Results) FailedFiles() []string {
	var failed []string
	for _, file := range r.Files {
		if file.Status != FileOK {
			failed = append(failed, file.Path)
		}
	}
	return failed
}
