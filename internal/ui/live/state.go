package live

import (
	"time"

	"phonediff/internal/runner"
)

// FileStatus is the progress state of one input file.
type FileStatus string

const (
	FileQueued    FileStatus = "queued"
	FileRunning   FileStatus = "running"
	FileDone      FileStatus = "done"
	FileReadError FileStatus = "read error"
)

// FileRow holds UI state for a single input file.
type FileRow struct {
	Path       string
	Status     FileStatus
	Sentences  int
	Done       int
	Counters   runner.Counters
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// State captures the live UI state for a run.
type State struct {
	RunID     string
	StartedAt time.Time
	Status    string
	LastEvent string
	Rows      []FileRow
	Totals    runner.Counters
}
