package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phonediff/internal/config"
	"phonediff/internal/duckdb"
	"phonediff/internal/observability"
	"phonediff/internal/pipeline"
	"phonediff/internal/render"
	"phonediff/internal/runner"
	"phonediff/internal/segment"
	"phonediff/internal/ui/live"
)

// serviceName identifies traces and metrics.
const serviceName = "phonediff"

// storeTimeout bounds result persistence, which also runs after an interrupt.
const storeTimeout = 30 * time.Second

// liveUI is the live progress display driven by run events.
type liveUI interface {
	runner.RunObserver
	Close()
	Wait() error
}

// newPipeline is a test seam for pipeline construction.
var newPipeline = pipeline.New

// startLive is a test seam for launching the live UI.
var startLive = func(stdout io.Writer, opts live.Options) liveUI {
	return live.Start(stdout, opts)
}

// notifyContext is a test seam for interrupt handling.
var notifyContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// runOverrides holds command line settings that take precedence over the
// config file.
type runOverrides struct {
	color       string
	ui          string
	onReadError string
	resultsDir  string
	noResults   bool
}

func (o runOverrides) validate() error {
	if err := checkChoice("color", o.color, config.ColorAuto, config.ColorAlways, config.ColorNever); err != nil {
		return err
	}
	if err := checkChoice("ui", o.ui, config.UIAuto, config.UILive, config.UIPlain); err != nil {
		return err
	}
	return checkChoice("on-read-error", o.onReadError, config.OnReadErrorAbort, config.OnReadErrorSkip)
}

func (o runOverrides) apply(cfg *config.Config) {
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	if o.ui != "" {
		cfg.Output.UI = o.ui
	}
	if o.onReadError != "" {
		cfg.OnReadError = o.onReadError
	}
	if o.resultsDir != "" {
		cfg.Output.ResultsDir = o.resultsDir
	}
	if o.noResults {
		cfg.Output.ResultsDir = ""
	}
}

// runRun builds the handler for the run command.
func runRun(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		configPath := fs.String("config", "", "Path to config file (default: search for .phonediff/config.yml)")
		logLevel := fs.String("log-level", "", "Log level: debug|info|warn|error (default: $PHONEDIFF_LOG_LEVEL or info)")
		var overrides runOverrides
		fs.StringVar(&overrides.color, "color", "", "Color mode: auto|always|never (overrides config)")
		fs.StringVar(&overrides.ui, "ui", "", "UI mode: auto|live|plain (overrides config)")
		fs.StringVar(&overrides.onReadError, "on-read-error", "", "Unreadable file policy: abort|skip (overrides config)")
		fs.StringVar(&overrides.resultsDir, "results-dir", "", "Override results directory")
		fs.BoolVar(&overrides.noResults, "no-results", false, "Do not write results files")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		files := fs.Args()
		if len(files) == 0 {
			fmt.Fprintln(stderr, "Missing input files")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}
		if err := overrides.validate(); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		level, err := resolveLogLevel(*logLevel)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		logger := observability.InitLogger(stderr, level)

		cfg, err := loadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to load config:\n%v\n", err)
			return ExitError
		}
		overrides.apply(&cfg)
		decision, err := resolveUIMode(cfg.Output.UI, level <= slog.LevelDebug, stdout)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		ctx, stop := notifyContext(context.Background())
		defer stop()
		shutdown, err := observability.InitTracer(ctx, serviceName)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		}
		defer func() {
			_ = shutdown(context.Background())
		}()
		var metrics runner.Metrics
		if m, err := observability.NewMetrics(); err != nil {
			logger.Warn("metrics disabled", "error", err)
		} else {
			metrics = m
		}

		splitter, err := segment.NewSplitter(cfg.Segmentation.Delimiters, cfg.Segmentation.Whitespace)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid segmentation: %v\n", err)
			return ExitError
		}
		a, err := newPipeline(ctx, cfg.Pipelines.A)
		if err != nil {
			fmt.Fprintf(stderr, "Initialization failed: %v\n", err)
			return ExitError
		}
		defer closePipeline(logger, a)
		b, err := newPipeline(ctx, cfg.Pipelines.B)
		if err != nil {
			fmt.Fprintf(stderr, "Initialization failed: %v\n", err)
			return ExitError
		}
		defer closePipeline(logger, b)

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		useColor := render.ResolveColor(cfg.Output.Color, stdout)
		consoleOut := stdout
		var (
			buffered bytes.Buffer
			observer runner.RunObserver
			ui       liveUI
		)
		if decision.useLive {
			consoleOut = &buffered
			ui = startLive(stdout, live.Options{NoColor: !useColor, OnInterrupt: cancel})
			observer = ui
		}
		console := runner.NewConsole(consoleOut, render.NewPalette(useColor), a.ID(), b.ID())

		results, runErr := runner.Run(runCtx, runner.RunParams{
			Files:       files,
			Splitter:    splitter,
			A:           a,
			B:           b,
			OnReadError: cfg.OnReadError,
			Console:     console,
			Observer:    observer,
			Logger:      logger,
			Metrics:     metrics,
		})
		if ui != nil {
			ui.Close()
			if err := ui.Wait(); err != nil {
				logger.Warn("live ui failed", "error", err)
			}
			_, _ = buffered.WriteTo(stdout)
		}

		code := exitCode(results, runErr, stderr)
		if results.RunID != "" && !persistResults(cfg, results, stderr, logger) && code == ExitOK {
			code = ExitError
		}
		return code
	}
}

// exitCode maps the run outcome to a process status. Mismatches and
// per-sentence pipeline errors never fail a run.
func exitCode(results runner.Results, runErr error, stderr io.Writer) int {
	switch {
	case runErr == nil:
		return ExitOK
	case results.Status == runner.StatusInterrupted:
		fmt.Fprintln(stderr, "Run interrupted.")
		return ExitInterrupted
	case errors.Is(runErr, runner.ErrSkippedFiles):
		fmt.Fprintf(stderr, "Run completed with unreadable files: %v\n", runErr)
		return ExitError
	default:
		fmt.Fprintf(stderr, "Run failed: %v\n", runErr)
		return ExitError
	}
}

// persistResults writes the results file and database row set when
// configured and reports whether everything was stored.
func persistResults(cfg config.Config, results runner.Results, stderr io.Writer, logger *slog.Logger) bool {
	ok := true
	if cfg.Output.ResultsDir != "" {
		paths, err := runner.WriteRunOutputs(results, cfg.Output.ResultsDir, cfg.Output.Compression)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to write results: %v\n", err)
			ok = false
		} else {
			fmt.Fprintf(stderr, "Results: %s\n", paths.ResultsPath())
		}
	}
	if cfg.Output.Database != "" {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := storeResults(ctx, cfg.Output.Database, results); err != nil {
			fmt.Fprintf(stderr, "Failed to store results: %v\n", err)
			ok = false
		} else {
			logger.Info("results stored", "database", cfg.Output.Database, "run_id", results.RunID)
		}
	}
	return ok
}

func storeResults(ctx context.Context, path string, results runner.Results) error {
	db, err := duckdb.Open(ctx, path)
	if err != nil {
		return err
	}
	defer db.Close()
	return duckdb.WriteResults(ctx, db, results)
}

func closePipeline(logger *slog.Logger, p pipeline.Phonemizer) {
	if err := p.Close(); err != nil {
		logger.Warn("close pipeline", "pipeline", p.ID(), "error", err)
	}
}
