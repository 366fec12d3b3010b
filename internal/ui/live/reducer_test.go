package live

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"phonediff/internal/runner"
	"phonediff/internal/testutil"
)

// TestReduceFileLifecycle verifies file rows move from queued to done.
func TestReduceFileLifecycle(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		state := Reduce(State{}, Event{Kind: EventRunStart, RunID: "run-1", Files: []string{"/c/a.txt", "/c/b.txt"}}, start)
		if len(state.Rows) != 2 || state.Rows[1].Status != FileQueued {
			t.Fatalf("expected 2 queued rows, got %+v", state.Rows)
		}
		state = Reduce(state, Event{Kind: EventFileStart, Path: "/c/a.txt", Sentences: 2}, start)
		state = Reduce(state, Event{Kind: EventSentence, Path: "/c/a.txt", Index: 1, Outcome: runner.OutcomeMatch}, start)
		state = Reduce(state, Event{Kind: EventSentence, Path: "/c/a.txt", Index: 2, Outcome: runner.OutcomeLight}, start)

		row := state.Rows[0]
		if row.Status != FileRunning || row.Done != 2 || row.Counters.Light != 1 {
			t.Fatalf("unexpected running row %+v", row)
		}
		if state.LastEvent != "a.txt [2]: light" {
			t.Fatalf("unexpected last event %q", state.LastEvent)
		}

		var counters runner.Counters
		counters.Record(runner.OutcomeMatch)
		counters.Record(runner.OutcomeLight)
		end := start.Add(1500 * time.Millisecond)
		state = Reduce(state, Event{Kind: EventFileEnd, File: runner.FileResult{Path: "/c/a.txt", Status: runner.FileOK, Sentences: 2, Counters: counters}}, end)
		if state.Rows[0].Status != FileDone {
			t.Fatalf("expected done, got %s", state.Rows[0].Status)
		}
		if formatRowDuration(state.Rows[0], end.Add(time.Hour)) != "1.5s" {
			t.Fatalf("unexpected duration %q", formatRowDuration(state.Rows[0], end))
		}
		if state.Totals != counters {
			t.Fatalf("unexpected totals %+v", state.Totals)
		}
	})
}

// TestReduceReadError verifies failed files record the error.
func TestReduceReadError(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, Event{Kind: EventRunStart, Files: []string{"/c/bad.txt"}}, time.Now())
		state = Reduce(state, Event{Kind: EventFileEnd, File: runner.FileResult{Path: "/c/bad.txt", Status: runner.FileReadError, Error: "invalid utf-8"}}, time.Now())
		row := state.Rows[0]
		if row.Status != FileReadError || row.Error != "invalid utf-8" {
			t.Fatalf("unexpected row %+v", row)
		}
		if formatProgress(row) != "-" {
			t.Fatalf("unexpected progress %q", formatProgress(row))
		}
	})
}

// TestReduceRepairsDroppedSentences verifies file end counts win.
func TestReduceRepairsDroppedSentences(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		state := Reduce(State{}, Event{Kind: EventFileStart, Path: "/c/a.txt", Sentences: 3}, time.Now())
		counters := runner.Counters{Matches: 2, Fatal: 1}
		state = Reduce(state, Event{Kind: EventFileEnd, File: runner.FileResult{Path: "/c/a.txt", Status: runner.FileOK, Sentences: 3, Counters: counters}}, time.Now())
		if state.Rows[0].Done != 3 || state.Totals != counters {
			t.Fatalf("unexpected state %+v", state)
		}
	})
}

// TestModelConsumesEvents verifies the model folds events and quits when the
// stream closes.
func TestModelConsumesEvents(t *testing.T) {
	runWithTimeout(t, time.Second, func() {
		events := make(chan Event, 2)
		interrupted := 0
		model := NewModel(events, Options{NoColor: true, OnInterrupt: func() { interrupted++ }})
		events <- Event{Kind: EventRunStart, RunID: "run-9", Files: []string{"/c/a.txt"}}
		close(events)

		msg := waitForEvent(events)()
		updated, _ := model.Update(msg)
		model = updated.(Model)
		if model.State().RunID != "run-9" {
			t.Fatalf("expected run id, got %q", model.State().RunID)
		}
		view := model.View()
		if !strings.Contains(view, "Run run-9") || !strings.Contains(view, "Files: 0/1") {
			t.Fatalf("unexpected view:\n%s", view)
		}
		if rows := model.table.Rows(); len(rows) != 1 || rows[0][0] != "a.txt" || rows[0][1] != "queued" {
			t.Fatalf("unexpected rows %v", rows)
		}
		if _, ok := waitForEvent(events)().(tea.QuitMsg); !ok {
			t.Fatalf("expected quit after close")
		}

		updated, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		updated, _ = updated.(Model).Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		if interrupted != 1 {
			t.Fatalf("expected one interrupt, got %d", interrupted)
		}
	})
}

// TestControllerNilSafe verifies observer calls on a nil controller are no-ops.
func TestControllerNilSafe(t *testing.T) {
	var c *Controller
	c.OnRunStart("run", nil)
	c.OnSentence("a", 1, runner.OutcomeMatch)
	c.OnRunEnd(runner.Results{})
	if err := c.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestColumnsForWidth(t *testing.T) {
	if got := columnsForWidth(200)[0].Width; got != 200-fixedColumns-8 {
		t.Fatalf("unexpected file width %d", got)
	}
	if got := columnsForWidth(40)[0].Width; got != fileColumnMin {
		t.Fatalf("expected minimum width, got %d", got)
	}
	if got := formatFile("/c/とても長いファイル名.txt", 10); got != "とても..." {
		t.Fatalf("unexpected truncation %q", got)
	}
}

// runWithTimeout executes a test body with a timeout.
func runWithTimeout(t *testing.T, timeout time.Duration, fn func()) {
	t.Helper()
	ctx := testutil.Context(t, timeout)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-ctx.Done():
		t.Fatalf("test timed out")
	}
}
