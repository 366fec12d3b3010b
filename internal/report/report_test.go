package report

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"phonediff/internal/phoneme"
	"phonediff/internal/runner"
)

func finding(index int, text string, outcome runner.Outcome) runner.SentenceResult {
	a := phoneme.Sequence{"sil", "k", "o", "u", "sil"}
	b := phoneme.Sequence{"sil", "k", "o", "U", "sil"}
	if outcome == runner.OutcomeFatal {
		b = phoneme.Sequence{"sil", "k", "o", "sil"}
	}
	s := runner.SentenceResult{
		Index:       index,
		Text:        text,
		Fingerprint: runner.Fingerprint(text),
		Outcome:     outcome,
	}
	if outcome == runner.OutcomeError {
		s.ErrorB = "no reading"
		return s
	}
	v := phoneme.Compare(a, b)
	s.A, s.B, s.Verdict = a, b, &v
	return s
}

func results(runID string, findings ...runner.SentenceResult) runner.Results {
	var c runner.Counters
	for range 4 - len(findings) {
		c.Record(runner.OutcomeMatch)
	}
	for _, f := range findings {
		c.Record(f.Outcome)
	}
	return runner.Results{
		RunID:     runID,
		Status:    runner.StatusComplete,
		StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Pipelines: runner.PipelinePair{
			A: runner.PipelineInfo{ID: "openjtalk", Kind: "command"},
			B: runner.PipelineInfo{ID: "kana", Kind: "kana"},
		},
		Files: []runner.FileResult{
			{Path: "/corpus/a.txt", Status: runner.FileOK, Sentences: 4, Counters: c, Findings: findings},
		},
		Totals: c,
	}
}

func TestLoadResultsByCompression(t *testing.T) {
	for _, compression := range []string{"none", "gzip", "zstd"} {
		t.Run(compression, func(t *testing.T) {
			root := t.TempDir()
			want := results("run-1", finding(2, "こう", runner.OutcomeLight))
			paths, err := runner.WriteRunOutputs(want, root, compression)
			if err != nil {
				t.Fatalf("write outputs: %v", err)
			}
			got, err := LoadResults(paths.ResultsPath())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got.RunID != "run-1" || got.Totals != want.Totals {
				t.Fatalf("unexpected results: %+v", got)
			}
			f := got.Files[0].Findings[0]
			if f.Verdict == nil || f.Verdict.Kind() != phoneme.PositionalMismatch {
				t.Fatalf("verdict not restored: %+v", f.Verdict)
			}
		})
	}
}

func TestResolveRun(t *testing.T) {
	root := t.TempDir()
	first := results("20260101T000000Z-aaaaaaaaaaaa")
	second := results("20260102T000000Z-bbbbbbbbbbbb")
	if _, err := runner.WriteRunOutputs(first, root, "none"); err != nil {
		t.Fatalf("write first: %v", err)
	}
	paths, err := runner.WriteRunOutputs(second, root, "zstd")
	if err != nil {
		t.Fatalf("write second: %v", err)
	}

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "run id", ref: first.RunID, want: first.RunID},
		{name: "latest", ref: LatestRef, want: second.RunID},
		{name: "results file", ref: paths.ResultsPath(), want: second.RunID},
		{name: "run dir", ref: paths.RunDir(), want: second.RunID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := ResolveRun(root, tt.ref)
			if err != nil {
				t.Fatalf("resolve %q: %v", tt.ref, err)
			}
			if got.RunID != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.RunID)
			}
		})
	}

	if _, _, err := ResolveRun(root, "missing"); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
	if _, _, err := ResolveRun(t.TempDir(), LatestRef); !errors.Is(err, ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound for empty dir, got %v", err)
	}
	if _, _, err := ResolveRun(root, " "); err == nil {
		t.Fatalf("expected error for empty ref")
	}
}

func TestListRunsMissingDir(t *testing.T) {
	runs, err := ListRuns(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %v", runs)
	}
}

func TestCompareDetectsChanges(t *testing.T) {
	base := results("base",
		finding(1, "一", runner.OutcomeLight),
		finding(2, "二", runner.OutcomeFatal),
	)
	head := results("head",
		finding(1, "一", runner.OutcomeFatal),
		finding(3, "三", runner.OutcomeError),
	)
	d := Compare(base, head)
	if len(d.Changes) != 3 {
		t.Fatalf("expected 3 changes, got %+v", d.Changes)
	}
	want := []struct {
		index    int
		old, new runner.Outcome
		regress  bool
	}{
		{1, runner.OutcomeLight, runner.OutcomeFatal, true},
		{2, runner.OutcomeFatal, runner.OutcomeMatch, false},
		{3, runner.OutcomeMatch, runner.OutcomeError, true},
	}
	for i, w := range want {
		c := d.Changes[i]
		if c.Index != w.index || c.Old != w.old || c.New != w.new || c.Regression() != w.regress {
			t.Fatalf("change %d: unexpected %+v", i, c)
		}
	}
	if d.Regressions() != 2 {
		t.Fatalf("expected 2 regressions, got %d", d.Regressions())
	}
}

func TestCompareIdenticalRuns(t *testing.T) {
	run := results("same", finding(1, "一", runner.OutcomeLight))
	d := Compare(run, run)
	if len(d.Changes) != 0 || d.Regressions() != 0 {
		t.Fatalf("expected no changes, got %+v", d.Changes)
	}
}

func TestCompareSkipsUnreadFiles(t *testing.T) {
	base := results("base", finding(1, "一", runner.OutcomeLight))
	head := results("head")
	head.Files[0].Status = runner.FileReadError
	head.Files[0].Findings = nil
	head.Files = append(head.Files, runner.FileResult{Path: "/corpus/new.txt", Status: runner.FileOK})
	d := Compare(base, head)
	if len(d.Changes) != 0 {
		t.Fatalf("expected no changes, got %+v", d.Changes)
	}
	if len(d.Skipped) != 2 || d.Skipped[0] != "/corpus/a.txt" || d.Skipped[1] != "/corpus/new.txt" {
		t.Fatalf("unexpected skipped %v", d.Skipped)
	}
}

func TestCompareRepeatedSentences(t *testing.T) {
	base := results("base", finding(1, "はい", runner.OutcomeLight), finding(3, "はい", runner.OutcomeLight))
	head := results("head", finding(2, "はい", runner.OutcomeLight), finding(4, "はい", runner.OutcomeLight))
	if d := Compare(base, head); len(d.Changes) != 0 {
		t.Fatalf("shifted repeats should not change, got %+v", d.Changes)
	}
}

func TestWriteDiff(t *testing.T) {
	base := results("base", finding(1, "一", runner.OutcomeLight))
	head := results("head", finding(1, "一", runner.OutcomeFatal))
	var out bytes.Buffer
	WriteDiff(&out, Compare(base, head))
	text := out.String()
	for _, want := range []string{
		"Old base: 3 matches, 1 light mismatches, 0 fatal mismatches, 0 errors\n",
		"Delta: matches +0, light -1, fatal +1, errors +0\n",
		"Regressed a.txt#1 light -> fatal: 一\n",
		"1 changed, 1 regressed\n",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}

	out.Reset()
	WriteDiff(&out, Compare(base, base))
	if !strings.Contains(out.String(), "No sentence changed.") {
		t.Fatalf("expected no-change message, got:\n%s", out.String())
	}
}

func TestRenderHTML(t *testing.T) {
	run := results("run-html",
		finding(1, "<こう>", runner.OutcomeLight),
		finding(2, "こ", runner.OutcomeFatal),
		finding(3, "犬", runner.OutcomeError),
	)
	html, err := RenderHTML(context.Background(), run)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{
		"<title>phonediff run-html</title>",
		"&lt;こう&gt;",
		`<td class="light">U</td>`,
		"Fatal mismatch (length mismatch: A=5, B=4)",
		`<td class="fatal">`,
		"no reading",
		"<td>a.txt</td>",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in html", want)
		}
	}
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.html")
	if err := WriteHTML(context.Background(), path, results("run-file")); err != nil {
		t.Fatalf("write html: %v", err)
	}
}

func TestIndexPage(t *testing.T) {
	var out bytes.Buffer
	if err := IndexPage([]string{"r1", "r2"}, "/runs/").Render(context.Background(), &out); err != nil {
		t.Fatalf("render index: %v", err)
	}
	text := out.String()
	if strings.Index(text, "/runs/r2") > strings.Index(text, "/runs/r1") {
		t.Fatalf("expected newest run first:\n%s", text)
	}
}
