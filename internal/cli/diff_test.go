package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"phonediff/internal/report"
)

// twoRuns produces a run against fixtureB and a second one after the
// light mismatch on かき is fixed.
func twoRuns(t *testing.T) (project testProject, base, head string) {
	t.Helper()
	project = newTestProject(t, "  results_dir: results\n")
	input := writeTestFile(t, project.root, "book.txt", "あい。かき。")

	code, _, stderr, base := runProject(t, "--config", project.configPath, "--ui", "plain", input)
	if code != ExitOK || base == "" {
		t.Fatalf("first run: exit %d: %s", code, stderr)
	}
	writeTestFile(t, project.root, "fixtures/b.yml", fixtureA)
	code, _, stderr, head = runProject(t, "--config", project.configPath, "--ui", "plain", input)
	if code != ExitOK || head == "" {
		t.Fatalf("second run: exit %d: %s", code, stderr)
	}
	return project, base, head
}

func TestDiffCommandReportsImprovement(t *testing.T) {
	_, base, head := twoRuns(t)

	var out, err bytes.Buffer
	code := Run([]string{"diff", "--fail-on-regression", base, head}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, err.String())
	}
	if !strings.Contains(out.String(), "Improved book.txt#2 light -> match: かき") {
		t.Fatalf("expected improvement line, got %q", out.String())
	}
}

func TestDiffCommandFailsOnRegression(t *testing.T) {
	_, base, head := twoRuns(t)

	var out, err bytes.Buffer
	code := Run([]string{"diff", "--fail-on-regression", head, base}, &out, &err)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(out.String(), "Regressed book.txt#2 match -> light: かき") {
		t.Fatalf("expected regression line, got %q", out.String())
	}

	out.Reset()
	code = Run([]string{"diff", head, base}, &out, &err)
	if code != ExitOK {
		t.Fatalf("expected exit %d without --fail-on-regression, got %d", ExitOK, code)
	}
}

func TestDiffCommandJSON(t *testing.T) {
	project, base, head := twoRuns(t)
	runIDs, err := report.ListRuns(project.resultsDir)
	if err != nil || len(runIDs) != 2 {
		t.Fatalf("list runs: %v %v", runIDs, err)
	}

	var out, errOut bytes.Buffer
	code := Run([]string{"diff", "--json", "--results-dir", project.resultsDir, base, head}, &out, &errOut)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d: %s", ExitOK, code, errOut.String())
	}
	var d report.Diff
	if err := json.Unmarshal(out.Bytes(), &d); err != nil {
		t.Fatalf("decode diff: %v", err)
	}
	if len(d.Changes) != 1 || d.Regressions() != 0 {
		t.Fatalf("unexpected diff: %+v", d)
	}
}

func TestDiffCommandArguments(t *testing.T) {
	var out, err bytes.Buffer
	if code := Run([]string{"diff", "only-one"}, &out, &err); code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
	dir := t.TempDir()
	if code := Run([]string{"diff", "--results-dir", dir, "a", "b"}, &out, &err); code != ExitError {
		t.Fatalf("expected exit %d for unknown runs, got %d", ExitError, code)
	}
	if !strings.Contains(err.String(), "Base run not found") {
		t.Fatalf("expected not found notice, got %q", err.String())
	}
}
