// Package render lays out phoneme comparisons as text spans. Layout is pure;
// a Palette applies color or plain-text markers afterwards.
package render

import "phonediff/internal/phoneme"

// Emphasis classifies how a span should stand out.
type Emphasis int

const (
	Plain Emphasis = iota
	Light
	Fatal
)

// Span is one token and its emphasis.
type Span struct {
	Text     string
	Emphasis Emphasis
}

// Row is the rendered form of one pipeline's sequence.
type Row []Span

func emphasisOf(s phoneme.Severity) Emphasis {
	switch s {
	case phoneme.Light:
		return Light
	case phoneme.Fatal:
		return Fatal
	default:
		return Plain
	}
}

// Rows returns the A and B rows for a verdict. Positional verdicts emphasize
// each mismatched index; length verdicts emphasize the zones left by the
// boundary scan on each side independently.
func Rows(a, b phoneme.Sequence, v phoneme.Verdict) (Row, Row) {
	switch v.Kind() {
	case phoneme.PositionalMismatch:
		severities := v.Severities()
		rowA := make(Row, len(a))
		rowB := make(Row, len(b))
		for i, s := range severities {
			rowA[i] = Span{Text: a[i], Emphasis: emphasisOf(s)}
			rowB[i] = Span{Text: b[i], Emphasis: emphasisOf(s)}
		}
		return rowA, rowB
	case phoneme.LengthMismatch:
		boundary, _ := v.Boundary()
		return zoned(a, boundary), zoned(b, boundary)
	default:
		return plainRow(a), plainRow(b)
	}
}

func zoned(seq phoneme.Sequence, boundary phoneme.Boundary) Row {
	row := make(Row, len(seq))
	for _, zone := range boundary.Zones(len(seq)) {
		for i := zone.Start; i < zone.End; i++ {
			row[i] = Span{Text: seq[i], Emphasis: emphasisOf(zone.Severity)}
		}
	}
	return row
}

func plainRow(seq phoneme.Sequence) Row {
	row := make(Row, len(seq))
	for i, token := range seq {
		row[i] = Span{Text: token}
	}
	return row
}
