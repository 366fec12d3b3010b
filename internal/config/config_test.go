package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfigRejectsUnknownFields(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\nunknown: true\n"))
	if err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseConfigRejectsMultipleDocuments(t *testing.T) {
	_, err := ParseConfig([]byte("version: 1\n---\nversion: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
		t.Fatalf("expected multiple documents error, got %v", err)
	}
}

func TestLoadResolvesPathsAgainstRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fixtures/a.yml", "sentences: {}\n")
	configPath := writeFile(t, root, ".phonediff/config.yml", `version: 1
output:
  results_dir: out
  database: out/phonediff.duckdb
pipelines:
  a: {id: fixture, kind: static, fixture: fixtures/a.yml}
  b: {id: kana, kind: kana}
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Output.ResultsDir != filepath.Join(root, "out") {
		t.Fatalf("unexpected results dir %q", cfg.Output.ResultsDir)
	}
	if cfg.Output.Database != filepath.Join(root, "out", "phonediff.duckdb") {
		t.Fatalf("unexpected database %q", cfg.Output.Database)
	}
	if cfg.Pipelines.A.Fixture != filepath.Join(root, "fixtures", "a.yml") {
		t.Fatalf("unexpected fixture %q", cfg.Pipelines.A.Fixture)
	}
}

func TestLoadReportsValidationIssues(t *testing.T) {
	root := t.TempDir()
	configPath := writeFile(t, root, ".phonediff/config.yml", "version: 1\npipelines:\n  a: {kind: kana}\n")
	_, err := Load(configPath)
	if err == nil || !strings.Contains(err.Error(), "pipelines.b.kind: is required") {
		t.Fatalf("expected missing kind issue, got %v", err)
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	configPath := writeFile(t, root, ".phonediff/config.yml", "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find config: %v", err)
	}
	if found != configPath {
		t.Fatalf("expected %q, got %q", configPath, found)
	}
	if got := RepoRootFromConfigPath(found); got != root {
		t.Fatalf("expected root %q, got %q", root, got)
	}
}

func TestFindConfigPathMissingFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ConfigDirName), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := FindConfigPath(root)
	if err == nil || !strings.Contains(err.Error(), "config.yml is missing") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	configPath := ConfigPath(root)
	if err := Scaffold(configPath, ""); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Output.ResultsDir != filepath.Join(root, ".phonediff", "results") {
		t.Fatalf("unexpected results dir %q", cfg.Output.ResultsDir)
	}
	if cfg.Pipelines.A.Kind != KindKana || cfg.Pipelines.B.Kind != KindVoicevox {
		t.Fatalf("unexpected pipelines %+v", cfg.Pipelines)
	}
	if err := Scaffold(configPath, ""); err == nil {
		t.Fatalf("expected scaffold to refuse overwrite")
	}
}

func TestScaffoldQuotesResultsDir(t *testing.T) {
	root := t.TempDir()
	configPath := ConfigPath(root)
	if err := Scaffold(configPath, `runs "nightly"`); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("load scaffold: %v", err)
	}
	if cfg.Output.ResultsDir != filepath.Join(root, `runs "nightly"`) {
		t.Fatalf("unexpected results dir %q", cfg.Output.ResultsDir)
	}
}
