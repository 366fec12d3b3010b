package cli

import (
	"context"
	"fmt"
	"io"

	"phonediff/internal/corpus"
)

// runExtract builds the handler for the extract command.
func runExtract(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return runConvert(cmd, corpus.ExtractFile)
}

// runPreprocess builds the handler for the preprocess command.
func runPreprocess(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return runConvert(cmd, corpus.PreprocessFile)
}

// runConvert converts each file argument with fn, printing "src -> dst" in
// argument order. Any failure makes the command exit 1 after every file
// has been attempted.
func runConvert(cmd *Command, fn corpus.Convert) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		fs := newFlagSet(cmd, stderr)
		workers := fs.Int("workers", 0, "Files converted concurrently (default: GOMAXPROCS)")
		if code, ok := parseFlags(cmd, fs, args, stdout, stderr); !ok {
			return code
		}
		if fs.NArg() == 0 {
			fmt.Fprintln(stderr, "Missing input files")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		ctx, stop := notifyContext(context.Background())
		defer stop()
		code := ExitOK
		for _, result := range corpus.ProcessAll(ctx, fs.Args(), *workers, fn) {
			if result.Err != nil {
				fmt.Fprintf(stderr, "%s: %v\n", result.Source, result.Err)
				code = ExitError
				continue
			}
			fmt.Fprintf(stdout, "%s -> %s\n", result.Source, result.Destination)
		}
		return code
	}
}
