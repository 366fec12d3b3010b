package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Results file names by compression.
const (
	ResultsFile     = "results.json"
	ResultsFileGzip = "results.json.gz"
	ResultsFileZstd = "results.json.zst"
)

// OutputPaths describes filesystem locations for run outputs.
type OutputPaths struct {
	Root        string
	RunID       string
	Compression string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(root, runID, compression string) (OutputPaths, error) {
	if strings.TrimSpace(root) == "" {
		return OutputPaths{}, fmt.Errorf("output root is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	switch compression {
	case "", "none", "gzip", "zstd":
	default:
		return OutputPaths{}, fmt.Errorf("unsupported compression %q", compression)
	}
	return OutputPaths{Root: root, RunID: runID, Compression: compression}, nil
}

// RunDir returns the directory for a specific run.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Root, o.RunID)
}

// ResultsPath returns the path to the results file.
func (o OutputPaths) ResultsPath() string {
	switch o.Compression {
	case "gzip":
		return filepath.Join(o.RunDir(), ResultsFileGzip)
	case "zstd":
		return filepath.Join(o.RunDir(), ResultsFileZstd)
	default:
		return filepath.Join(o.RunDir(), ResultsFile)
	}
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}
