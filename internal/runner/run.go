package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"phonediff/internal/phoneme"
	"phonediff/internal/pipeline"
)

// Run compares the two pipelines over every sentence of every file, in
// input order. The returned Results are always usable, including when an
// error ends the run early: totals then cover everything processed so far.
func Run(ctx context.Context, params RunParams) (Results, error) {
	if params.A == nil || params.B == nil {
		return Results{}, fmt.Errorf("both pipelines are required")
	}
	if params.Splitter == nil {
		return Results{}, fmt.Errorf("splitter is required")
	}
	switch params.OnReadError {
	case "":
		params.OnReadError = OnReadErrorAbort
	case OnReadErrorAbort, OnReadErrorSkip:
	default:
		return Results{}, fmt.Errorf("invalid read error policy %q", params.OnReadError)
	}
	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	r := newRun(params)

	results := Results{
		RunID:     runID,
		Status:    StatusComplete,
		StartedAt: r.now(),
		Pipelines: PipelinePair{
			A: PipelineInfo{ID: params.A.ID(), Kind: params.A.Kind()},
			B: PipelineInfo{ID: params.B.ID(), Kind: params.B.Kind()},
		},
		Files: make([]FileResult, 0, len(params.Files)),
	}
	if r.observer != nil {
		r.observer.OnRunStart(runID, params.Files)
	}

	var runErr error
	for _, path := range params.Files {
		if err := ctx.Err(); err != nil {
			results.Status = StatusInterrupted
			runErr = err
			break
		}
		file, err := r.runFile(ctx, path)
		results.Files = append(results.Files, file)
		results.Totals.Add(file.Counters)
		params.Console.File(file)
		if r.observer != nil {
			r.observer.OnFileEnd(file)
		}
		if err == nil {
			continue
		}
		if ctx.Err() != nil {
			results.Status = StatusInterrupted
			runErr = err
			break
		}
		if params.OnReadError == OnReadErrorAbort {
			r.logger.Error("aborting run on unreadable file", "file", path, "error", err)
			results.Status = StatusAborted
			runErr = err
			break
		}
		r.logger.Warn("skipping unreadable file", "file", path, "error", err)
	}

	results.FinishedAt = r.now()
	params.Console.Total(results.Totals)
	if r.observer != nil {
		r.observer.OnRunEnd(results)
	}
	if failed := results.FailedFiles(); runErr == nil && len(failed) > 0 {
		runErr = fmt.Errorf("%w: %s", ErrSkippedFiles, strings.Join(failed, ", "))
	}
	return results, runErr
}

// run carries the resolved collaborators of one Run call.
type run struct {
	params   RunParams
	observer RunObserver
	logger   *slog.Logger
	metrics  Metrics
	now      func() time.Time
	readFile func(string) ([]byte, error)
}

func newRun(params RunParams) *run {
	r := &run{
		params:   params,
		observer: params.Observer,
		logger:   params.Logger,
		metrics:  params.Metrics,
		now:      params.Deps.Now,
		readFile: params.Deps.ReadFile,
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.metrics == nil {
		r.metrics = nopMetrics{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.readFile == nil {
		r.readFile = os.ReadFile
	}
	return r
}

// runFile processes one file. Counters for the sentences handled before a
// cancellation are kept in the returned result.
func (r *run) runFile(ctx context.Context, path string) (FileResult, error) {
	data, err := r.readFile(path)
	if err == nil && !utf8.Valid(data) {
		err = errors.New("file is not valid UTF-8")
	}
	if err != nil {
		return FileResult{Path: path, Status: FileReadError, Error: err.Error(), Findings: []SentenceResult{}},
			fmt.Errorf("read %s: %w", path, err)
	}

	sentences := r.params.Splitter.Split(string(data))
	file := FileResult{Path: path, Status: FileOK, Sentences: len(sentences), Findings: []SentenceResult{}}
	if r.observer != nil {
		r.observer.OnFileStart(path, len(sentences))
	}
	r.logger.Debug("comparing file", "file", path, "sentences", len(sentences))

	for i, sentence := range sentences {
		result, err := r.compare(ctx, path, i+1, sentence)
		if err != nil {
			return file, err
		}
		file.Counters.Record(result.Outcome)
		r.metrics.RecordSentence(ctx, string(result.Outcome))
		if result.Outcome != OutcomeMatch {
			file.Findings = append(file.Findings, result)
			r.params.Console.Sentence(path, len(sentences), result)
		}
		if r.observer != nil {
			r.observer.OnSentence(path, i+1, result.Outcome)
		}
	}
	return file, nil
}

// compare runs both pipelines on one sentence and judges the outputs. The
// only error it returns is the context's.
func (r *run) compare(ctx context.Context, path string, index int, sentence string) (SentenceResult, error) {
	var (
		seqA, seqB phoneme.Sequence
		errA, errB error
		wg         sync.WaitGroup
	)
	wg.Go(func() {
		seqA, errA = r.call(ctx, r.params.A, sentence)
	})
	wg.Go(func() {
		seqB, errB = r.call(ctx, r.params.B, sentence)
	})
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return SentenceResult{}, err
	}

	result := SentenceResult{Index: index, Text: sentence, Fingerprint: Fingerprint(sentence)}
	if errA != nil || errB != nil {
		result.Outcome = OutcomeError
		for _, failed := range []struct {
			id  string
			err error
			dst *string
		}{{r.params.A.ID(), errA, &result.ErrorA}, {r.params.B.ID(), errB, &result.ErrorB}} {
			if failed.err == nil {
				continue
			}
			*failed.dst = failed.err.Error()
			r.logger.Warn("pipeline failed", "file", path, "sentence", index, "pipeline", failed.id, "error", failed.err)
		}
		return result, nil
	}

	verdict := phoneme.Compare(seqA, seqB)
	result.Outcome = OutcomeOf(verdict)
	if result.Outcome != OutcomeMatch {
		result.A, result.B, result.Verdict = seqA, seqB, &verdict
	}
	return result, nil
}

func (r *run) call(ctx context.Context, p pipeline.Phonemizer, sentence string) (phoneme.Sequence, error) {
	start := r.now()
	seq, err := p.Phonemize(ctx, sentence)
	r.metrics.RecordPipelineCall(ctx, p.ID(), r.now().Sub(start), err)
	return seq, err
}

// ensureRunID resolves a run ID via the override or the default generator.
func ensureRunID(generator func() (string, error)) (string, error) {
	if generator == nil {
		generator = NewRunID
	}
	runID, err := generator()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	if strings.TrimSpace(runID) == "" {
		return "", fmt.Errorf("generate run id: empty id")
	}
	return runID, nil
}
