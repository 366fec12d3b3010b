package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"phonediff/internal/pipeline"
	"phonediff/internal/segment"
)

// Read error policies.
const (
	OnReadErrorAbort = "abort"
	OnReadErrorSkip  = "skip"
)

// ErrSkippedFiles is returned after a complete run in which some input files
// could not be read under the skip policy.
var ErrSkippedFiles = errors.New("runner: input files skipped")

// Metrics records run telemetry.
type Metrics interface {
	RecordSentence(ctx context.Context, outcome string)
	RecordPipelineCall(ctx context.Context, pipelineID string, elapsed time.Duration, err error)
}

// RunDependencies allows injecting clocks and I/O for a run.
type RunDependencies struct {
	RunID    func() (string, error)
	Now      func() time.Time
	ReadFile func(path string) ([]byte, error)
}

// RunParams configures a run invocation.
type RunParams struct {
	Files       []string
	Splitter    *segment.Splitter
	A           pipeline.Phonemizer
	B           pipeline.Phonemizer
	OnReadError string
	Console     *Console
	Observer    RunObserver
	Logger      *slog.Logger
	Metrics     Metrics
	Deps        RunDependencies
}

type nopMetrics struct{}

func (nopMetrics) RecordSentence(context.Context, string) {}

func (nopMetrics) RecordPipelineCall(context.Context, string, time.Duration, error) {}
