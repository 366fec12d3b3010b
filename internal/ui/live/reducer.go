package live

import (
	"fmt"
	"path/filepath"
	"time"

	"phonediff/internal/runner"
)

// Reduce applies an event to the UI state. now stamps file start and end
// times.
func Reduce(state State, event Event, now time.Time) State {
	switch event.Kind {
	case EventRunStart:
		state.RunID = event.RunID
		if state.StartedAt.IsZero() {
			state.StartedAt = now
		}
		state.Rows = make([]FileRow, len(event.Files))
		for i, path := range event.Files {
			state.Rows[i] = FileRow{Path: path, Status: FileQueued}
		}
	case EventFileStart:
		row := ensureRow(&state, event.Path)
		row.Status = FileRunning
		row.Sentences = event.Sentences
		row.StartedAt = now
		state.LastEvent = fmt.Sprintf("%s: %d sentences", filepath.Base(event.Path), event.Sentences)
	case EventSentence:
		row := ensureRow(&state, event.Path)
		row.Done++
		row.Counters.Record(event.Outcome)
		state.Totals.Record(event.Outcome)
		if event.Outcome != runner.OutcomeMatch {
			state.LastEvent = fmt.Sprintf("%s [%d]: %s", filepath.Base(event.Path), event.Index, event.Outcome)
		}
	case EventFileEnd:
		row := ensureRow(&state, event.File.Path)
		row.FinishedAt = now
		row.Sentences = event.File.Sentences
		row.Done = event.File.Counters.Total()
		row.Counters = event.File.Counters
		if event.File.Status == runner.FileOK {
			row.Status = FileDone
		} else {
			row.Status = FileReadError
			row.Error = event.File.Error
			state.LastEvent = fmt.Sprintf("%s: %s", filepath.Base(event.File.Path), event.File.Error)
		}
		state.Totals = recount(state.Rows)
	case EventRunEnd:
		state.Status = event.Status
	}
	return state
}

// ensureRow returns the row for path, appending one for unknown paths.
func ensureRow(state *State, path string) *FileRow {
	for i := range state.Rows {
		if state.Rows[i].Path == path {
			return &state.Rows[i]
		}
	}
	state.Rows = append(state.Rows, FileRow{Path: path, Status: FileQueued})
	return &state.Rows[len(state.Rows)-1]
}

// recount sums file counters. File end events carry authoritative counts,
// which repairs totals if sentence events were dropped.
func recount(rows []FileRow) runner.Counters {
	var totals runner.Counters
	for _, row := range rows {
		totals.Add(row.Counters)
	}
	return totals
}
