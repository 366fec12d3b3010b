package cli

import (
	"os"
	"path/filepath"
	"testing"
)

// testProject is a temp repo with a config comparing two static pipelines.
type testProject struct {
	root       string
	configPath string
	resultsDir string
}

const fixtureA = `sentences:
  あい: [a, i]
  かき: [k, a, k, i]
  すし: [s, u, sh, i]
`

const fixtureB = `sentences:
  あい: [a, i]
  かき: [k, a, k, I]
  すし: [s, u, i]
`

func newTestProject(t *testing.T, output string) testProject {
	t.Helper()
	root := t.TempDir()
	writeTestFile(t, root, "fixtures/a.yml", fixtureA)
	writeTestFile(t, root, "fixtures/b.yml", fixtureB)
	configPath := writeTestFile(t, root, ".phonediff/config.yml", `version: 1
output:
`+output+`pipelines:
  a:
    id: ref
    kind: static
    fixture: fixtures/a.yml
  b:
    id: cand
    kind: static
    fixture: fixtures/b.yml
`)
	return testProject{root: root, configPath: configPath, resultsDir: filepath.Join(root, "results")}
}

func writeTestFile(t *testing.T, dir, name, payload string) string {
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
