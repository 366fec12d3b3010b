package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Color settings accepted by ResolveColor.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Palette decorates spans. With color disabled, light spans are wrapped in
// parentheses and fatal spans in brackets.
type Palette struct {
	color bool
	light lipgloss.Style
	fatal lipgloss.Style
}

// NewPalette builds a palette writing ANSI colors when color is true.
func NewPalette(color bool) Palette {
	renderer := lipgloss.NewRenderer(io.Discard)
	if color {
		renderer.SetColorProfile(termenv.ANSI256)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return Palette{
		color: color,
		light: renderer.NewStyle().Foreground(lipgloss.Color("220")),
		fatal: renderer.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

// Color reports whether the palette emits ANSI sequences.
func (p Palette) Color() bool {
	return p.color
}

// Span decorates a span's text.
func (p Palette) Span(s Span) string {
	switch s.Emphasis {
	case Light:
		if p.color {
			return p.light.Render(s.Text)
		}
		return "(" + s.Text + ")"
	case Fatal:
		if p.color {
			return p.fatal.Render(s.Text)
		}
		return "[" + s.Text + "]"
	default:
		return s.Text
	}
}

// Width is the display width of a decorated span, ignoring escape codes.
func (p Palette) Width(s Span) int {
	w := runewidth.StringWidth(s.Text)
	if !p.color && s.Emphasis != Plain {
		w += 2
	}
	return w
}

// Heading colors a heading without adding markers.
func (p Palette) Heading(e Emphasis, text string) string {
	if !p.color {
		return text
	}
	switch e {
	case Light:
		return p.light.Render(text)
	case Fatal:
		return p.fatal.Render(text)
	default:
		return text
	}
}

// Columns returns per-column widths when two rows have equal length, and nil
// otherwise.
func (p Palette) Columns(rowA, rowB Row) []int {
	if len(rowA) != len(rowB) {
		return nil
	}
	widths := make([]int, len(rowA))
	for i := range rowA {
		widths[i] = max(p.Width(rowA[i]), p.Width(rowB[i]))
	}
	return widths
}

// Lines renders two labelled rows with aligned columns. Labels are
// right-aligned to the wider one, or to minLabel columns if that is wider.
func (p Palette) Lines(minLabel int, labelA string, rowA Row, labelB string, rowB Row) (string, string) {
	labelWidth := max(minLabel, runewidth.StringWidth(labelA), runewidth.StringWidth(labelB))
	widths := p.Columns(rowA, rowB)
	return p.Line(labelA, labelWidth, rowA, widths), p.Line(labelB, labelWidth, rowB, widths)
}

// Line renders one labelled row. With widths set, each token is
// right-aligned in its column.
func (p Palette) Line(label string, labelWidth int, row Row, widths []int) string {
	var b strings.Builder
	b.WriteString(runewidth.FillLeft(label, labelWidth))
	b.WriteString(":")
	for i, span := range row {
		b.WriteString(" ")
		if widths != nil {
			b.WriteString(strings.Repeat(" ", widths[i]-p.Width(span)))
		}
		b.WriteString(p.Span(span))
	}
	return b.String()
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// ResolveColor decides whether output to w should be colored. "auto" colors
// terminals unless NO_COLOR, TERM=dumb or CLICOLOR=0 say otherwise.
func ResolveColor(mode string, w io.Writer) bool {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	return isTerminal(w)
}

func defaultIsTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := w.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}
