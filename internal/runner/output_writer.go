package runner

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// WriteRunOutputs writes results under outputDir/<run-id>/.
func WriteRunOutputs(results Results, outputDir, compression string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, results.RunID, compression)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}
	if err := writeJSON(paths.ResultsPath(), compression, results); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// writeJSON writes a Results payload as pretty JSON, compressed on request.
func writeJSON(path, compression string, results Results) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", filepath.Base(path), closeErr)
		}
	}()

	buffered := bufio.NewWriter(file)
	var w io.WriteCloser
	switch compression {
	case "gzip":
		w = gzip.NewWriter(buffered)
	case "zstd":
		encoder, encErr := zstd.NewWriter(buffered)
		if encErr != nil {
			return fmt.Errorf("create zstd writer: %w", encErr)
		}
		w = encoder
	default:
		w = nopCloser{buffered}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finish %s: %w", filepath.Base(path), err)
	}
	if err := buffered.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
