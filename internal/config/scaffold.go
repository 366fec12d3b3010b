package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// scaffoldConfig returns the default config file. The results directory is
// written relative to the repo root.
func scaffoldConfig(resultsDir string) string {
	return `version: 1
segmentation:
  delimiters: "。「」"
  whitespace: remove
on_read_error: abort
output:
  results_dir: ` + strconv.Quote(resultsDir) + `
  compression: none
  color: auto
  ui: auto
pipelines:
  a:
    id: kana
    kind: kana
    devoice: true
  b:
    id: voicevox
    kind: voicevox
    endpoint: "` + DefaultEndpoint + `"
    speaker: 1
    requests_per_second: 10
`
}

// Scaffold writes a default config file, refusing to overwrite one.
func Scaffold(configPath, resultsDir string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if resultsDir == "" {
		resultsDir = DefaultResultsDir
	}
	payload := scaffoldConfig(filepath.ToSlash(resultsDir))
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(payload), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
