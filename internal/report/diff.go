package report

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"phonediff/internal/runner"
)

// Change is a sentence whose outcome differs between two runs.
type Change struct {
	Path        string         `json:"path"`
	Index       int            `json:"index"`
	Text        string         `json:"text"`
	Fingerprint string         `json:"fingerprint"`
	Old         runner.Outcome `json:"old"`
	New         runner.Outcome `json:"new"`
}

// Regression reports whether the sentence got worse.
func (c Change) Regression() bool {
	return c.New.Worse(c.Old)
}

// Diff compares two runs.
type Diff struct {
	OldRunID  string          `json:"old_run_id"`
	NewRunID  string          `json:"new_run_id"`
	OldTotals runner.Counters `json:"old_totals"`
	NewTotals runner.Counters `json:"new_totals"`
	Changes   []Change        `json:"changes"`
	// Skipped lists files that were not read successfully in both runs.
	Skipped []string `json:"skipped,omitempty"`
}

// Regressions counts changes that got worse.
func (d Diff) Regressions() int {
	n := 0
	for _, c := range d.Changes {
		if c.Regression() {
			n++
		}
	}
	return n
}

// sentenceKey identifies a sentence within a file by its text and the
// occurrence number of that text, so inserted sentences do not shift keys.
type sentenceKey struct {
	fingerprint string
	occurrence  int
}

// Compare diffs two runs. Only files read successfully in both runs are
// compared; a sentence absent from a file's findings matched exactly.
func Compare(base, head runner.Results) Diff {
	d := Diff{
		OldRunID:  base.RunID,
		NewRunID:  head.RunID,
		OldTotals: base.Totals,
		NewTotals: head.Totals,
	}
	oldFiles := indexFiles(base.Files)
	newFiles := indexFiles(head.Files)

	paths := make([]string, 0, len(oldFiles)+len(newFiles))
	for path := range oldFiles {
		paths = append(paths, path)
	}
	for path := range newFiles {
		if _, ok := oldFiles[path]; !ok {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)

	for _, path := range paths {
		oldFile, inOld := oldFiles[path]
		newFile, inNew := newFiles[path]
		if !inOld || !inNew || oldFile.Status != runner.FileOK || newFile.Status != runner.FileOK {
			d.Skipped = append(d.Skipped, path)
			continue
		}
		d.Changes = append(d.Changes, compareFile(path, oldFile, newFile)...)
	}
	return d
}

func indexFiles(files []runner.FileResult) map[string]runner.FileResult {
	out := make(map[string]runner.FileResult, len(files))
	for _, f := range files {
		out[f.Path] = f
	}
	return out
}

func indexFindings(findings []runner.SentenceResult) map[sentenceKey]runner.SentenceResult {
	out := make(map[sentenceKey]runner.SentenceResult, len(findings))
	seen := make(map[string]int)
	for _, s := range findings {
		fp := s.Fingerprint
		if fp == "" {
			fp = runner.Fingerprint(s.Text)
		}
		seen[fp]++
		out[sentenceKey{fingerprint: fp, occurrence: seen[fp]}] = s
	}
	return out
}

func compareFile(path string, oldFile, newFile runner.FileResult) []Change {
	oldFindings := indexFindings(oldFile.Findings)
	newFindings := indexFindings(newFile.Findings)

	var changes []Change
	for key, o := range oldFindings {
		n, ok := newFindings[key]
		newOutcome := runner.OutcomeMatch
		index := o.Index
		if ok {
			newOutcome = n.Outcome
			index = n.Index
		}
		if newOutcome == o.Outcome {
			continue
		}
		changes = append(changes, Change{
			Path: path, Index: index, Text: o.Text, Fingerprint: key.fingerprint,
			Old: o.Outcome, New: newOutcome,
		})
	}
	for key, n := range newFindings {
		if _, ok := oldFindings[key]; ok {
			continue
		}
		changes = append(changes, Change{
			Path: path, Index: n.Index, Text: n.Text, Fingerprint: key.fingerprint,
			Old: runner.OutcomeMatch, New: n.Outcome,
		})
	}
	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Index < changes[j].Index
	})
	return changes
}

// WriteDiff prints a diff in the console format.
func WriteDiff(w io.Writer, d Diff) {
	fmt.Fprintf(w, "Old %s: %s\n", d.OldRunID, d.OldTotals)
	fmt.Fprintf(w, "New %s: %s\n", d.NewRunID, d.NewTotals)
	fmt.Fprintf(w, "Delta: matches %+d, light %+d, fatal %+d, errors %+d\n",
		d.NewTotals.Matches-d.OldTotals.Matches,
		d.NewTotals.Light-d.OldTotals.Light,
		d.NewTotals.Fatal-d.OldTotals.Fatal,
		d.NewTotals.Errors-d.OldTotals.Errors,
	)
	for _, path := range d.Skipped {
		fmt.Fprintf(w, "Skipped %s: not read in both runs\n", filepath.Base(path))
	}
	if len(d.Changes) == 0 {
		fmt.Fprintln(w, "No sentence changed.")
		return
	}
	for _, c := range d.Changes {
		label := "Improved"
		if c.Regression() {
			label = "Regressed"
		}
		fmt.Fprintf(w, "%s %s#%d %s -> %s: %s\n", label, filepath.Base(c.Path), c.Index, c.Old, c.New, c.Text)
	}
	fmt.Fprintf(w, "%d changed, %d regressed\n", len(d.Changes), d.Regressions())
}
