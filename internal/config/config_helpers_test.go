package config

import (
	"os"
	"path/filepath"
	"testing"
)

// validConfig returns a minimal config used by validation tests.
func validConfig() Config {
	cfg := Config{
		Version: 1,
		Pipelines: PipelinesConfig{
			A: PipelineConfig{ID: "kana", Kind: KindKana},
			B: PipelineConfig{ID: "engine", Kind: KindCommand, Command: []string{"phonemize"}},
		},
	}
	Normalize(&cfg)
	return cfg
}

func writeFile(t *testing.T, dir, name, payload string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}
