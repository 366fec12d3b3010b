package live

import "phonediff/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventFileStart signals that a file was split into sentences.
	EventFileStart
	// EventSentence delivers one sentence outcome.
	EventSentence
	// EventFileEnd signals file completion.
	EventFileEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	RunID     string
	Files     []string
	Path      string
	Sentences int
	Index     int
	Outcome   runner.Outcome
	File      runner.FileResult
	Status    string
}
