package live

import (
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"phonediff/internal/runner"
)

// Controller runs the live UI and implements runner.RunObserver.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	err       error
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithAltScreen())
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
	}
	go func() {
		_, controller.err = program.Run()
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited and reports its error.
func (c *Controller) Wait() error {
	if c == nil {
		return nil
	}
	<-c.done
	return c.err
}

// OnRunStart forwards run start events to the UI.
func (c *Controller) OnRunStart(runID string, files []string) {
	c.sendWait(Event{Kind: EventRunStart, RunID: runID, Files: files})
}

// OnFileStart forwards file start events to the UI.
func (c *Controller) OnFileStart(path string, sentences int) {
	c.sendWait(Event{Kind: EventFileStart, Path: path, Sentences: sentences})
}

// OnSentence forwards sentence outcomes. They are dropped when the UI falls
// behind; file end events carry the final counts.
func (c *Controller) OnSentence(path string, index int, outcome runner.Outcome) {
	c.send(Event{Kind: EventSentence, Path: path, Index: index, Outcome: outcome})
}

// OnFileEnd forwards file completion events to the UI.
func (c *Controller) OnFileEnd(file runner.FileResult) {
	c.sendWait(Event{Kind: EventFileEnd, File: file})
}

// OnRunEnd forwards run completion events to the UI and closes it.
func (c *Controller) OnRunEnd(results runner.Results) {
	c.sendWait(Event{Kind: EventRunEnd, Status: results.Status})
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	default:
	}
}

// sendWait enqueues an event, giving up only if the UI has exited.
func (c *Controller) sendWait(event Event) {
	if c == nil {
		return
	}
	select {
	case c.events <- event:
	case <-c.done:
	}
}
