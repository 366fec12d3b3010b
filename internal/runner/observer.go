package runner

// RunObserver receives run lifecycle events for UI or logging. Calls arrive
// from the run loop goroutine in order.
type RunObserver interface {
	// OnRunStart signals the start of a run over the given files.
	OnRunStart(runID string, files []string)
	// OnFileStart signals that a file was read and split.
	OnFileStart(path string, sentences int)
	// OnSentence delivers one sentence outcome.
	OnSentence(path string, index int, outcome Outcome)
	// OnFileEnd signals file completion, including read failures.
	OnFileEnd(file FileResult)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}
