package runner

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/mattn/go-runewidth"

	"phonediff/internal/phoneme"
	"phonediff/internal/render"
)

const originalLabel = "Original"

// Console writes the human-readable report: one block per non-matching
// sentence, one line per file and a final total.
type Console struct {
	w          io.Writer
	palette    render.Palette
	idA, idB   string
	labelWidth int
}

// NewConsole builds a reporter labelling rows with the pipeline IDs.
func NewConsole(w io.Writer, palette render.Palette, idA, idB string) *Console {
	width := max(runewidth.StringWidth(originalLabel), runewidth.StringWidth(idA), runewidth.StringWidth(idB))
	return &Console{w: w, palette: palette, idA: idA, idB: idB, labelWidth: width}
}

// Sentence reports one finding. Matches are not reported.
func (c *Console) Sentence(file string, total int, s SentenceResult) {
	if c == nil || s.Outcome == OutcomeMatch {
		return
	}
	prefix := fmt.Sprintf("[%s : %d / %d]: ", filepath.Base(file), s.Index, total)
	if s.Outcome == OutcomeError {
		fmt.Fprintln(c.w, prefix+c.palette.Heading(render.Fatal, "Error:"))
		c.original(s.Text)
		fmt.Fprintln(c.w, c.status(c.idA, s.ErrorA))
		fmt.Fprintln(c.w, c.status(c.idB, s.ErrorB))
		return
	}

	heading, emphasis := "Light mismatch:", render.Light
	if s.Outcome == OutcomeFatal {
		heading, emphasis = "Fatal mismatch:", render.Fatal
	}
	if s.Verdict != nil && s.Verdict.Kind() == phoneme.LengthMismatch {
		heading = fmt.Sprintf("Fatal mismatch (length mismatch: %s=%d, %s=%d)", c.idA, len(s.A), c.idB, len(s.B))
	}
	fmt.Fprintln(c.w, prefix+c.palette.Heading(emphasis, heading))
	c.original(s.Text)

	verdict := phoneme.Compare(s.A, s.B)
	if s.Verdict != nil {
		verdict = *s.Verdict
	}
	rowA, rowB := render.Rows(s.A, s.B, verdict)
	lineA, lineB := c.palette.Lines(c.labelWidth, c.idA, rowA, c.idB, rowB)
	fmt.Fprintln(c.w, lineA)
	fmt.Fprintln(c.w, lineB)
}

func (c *Console) original(text string) {
	fmt.Fprintf(c.w, "%s: %s\n", runewidth.FillLeft(originalLabel, c.labelWidth), text)
}

func (c *Console) status(id, errText string) string {
	if errText == "" {
		errText = "ok"
	}
	return fmt.Sprintf("%s: %s", runewidth.FillLeft(id, c.labelWidth), errText)
}

// File reports the counters for one file.
func (c *Console) File(file FileResult) {
	if c == nil {
		return
	}
	if file.Status != FileOK {
		fmt.Fprintf(c.w, "%s: %s\n", filepath.Base(file.Path), c.palette.Heading(render.Fatal, "read error: "+file.Error))
		return
	}
	fmt.Fprintf(c.w, "%s: %s\n", filepath.Base(file.Path), file.Counters)
}

// Total reports the run totals.
func (c *Console) Total(totals Counters) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.w, "Total: %s\n", totals)
}
