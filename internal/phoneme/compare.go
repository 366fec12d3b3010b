package phoneme

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Kind identifies which comparison path produced a verdict.
type Kind int

const (
	// AllMatch means both sequences are identical.
	AllMatch Kind = iota
	// PositionalMismatch means equal lengths with at least one differing position.
	PositionalMismatch
	// LengthMismatch means the sequences differ in length.
	LengthMismatch
)

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case AllMatch:
		return "all_match"
	case PositionalMismatch:
		return "positional_mismatch"
	case LengthMismatch:
		return "length_mismatch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func parseKind(name string) (Kind, error) {
	for _, kind := range []Kind{AllMatch, PositionalMismatch, LengthMismatch} {
		if kind.String() == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("phoneme: unknown verdict kind %q", name)
}

// Verdict is the immutable judgment for one sentence.
type Verdict struct {
	kind       Kind
	severities []Severity
	boundary   Boundary
}

// Compare judges two sequences produced for the same sentence.
func Compare(a, b Sequence) Verdict {
	if slices.Equal(a, b) {
		return Verdict{kind: AllMatch}
	}
	if len(a) == len(b) {
		// Align cannot fail here: the lengths are equal.
		severities, _ := Align(a, b)
		if worstOf(severities) == Match {
			return Verdict{kind: AllMatch}
		}
		return Verdict{kind: PositionalMismatch, severities: severities}
	}
	return Verdict{kind: LengthMismatch, boundary: Localize(a, b)}
}

// Kind reports the comparison path.
func (v Verdict) Kind() Kind {
	return v.kind
}

// Severities returns a copy of the per-position severities of a positional
// mismatch, or nil for the other kinds.
func (v Verdict) Severities() []Severity {
	return slices.Clone(v.severities)
}

// Boundary returns the localized region of a length mismatch. ok is false
// for the other kinds.
func (v Verdict) Boundary() (Boundary, bool) {
	return v.boundary, v.kind == LengthMismatch
}

// Worst returns Match for AllMatch, Fatal for a length mismatch and the
// highest positional severity otherwise.
func (v Verdict) Worst() Severity {
	switch v.kind {
	case AllMatch:
		return Match
	case LengthMismatch:
		return Fatal
	default:
		return worstOf(v.severities)
	}
}

type verdictJSON struct {
	Kind       string     `json:"kind"`
	Severities []Severity `json:"severities,omitempty"`
	Boundary   *Boundary  `json:"boundary,omitempty"`
}

// MarshalJSON encodes the verdict with its kind name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	payload := verdictJSON{Kind: v.kind.String(), Severities: v.severities}
	if v.kind == LengthMismatch {
		boundary := v.boundary
		payload.Boundary = &boundary
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes a verdict written by MarshalJSON.
func (v *Verdict) UnmarshalJSON(data []byte) error {
	var payload verdictJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	kind, err := parseKind(payload.Kind)
	if err != nil {
		return err
	}
	decoded := Verdict{kind: kind}
	switch kind {
	case PositionalMismatch:
		if len(payload.Severities) == 0 {
			return fmt.Errorf("phoneme: positional mismatch without severities")
		}
		decoded.severities = payload.Severities
	case LengthMismatch:
		if payload.Boundary == nil {
			return fmt.Errorf("phoneme: length mismatch without boundary")
		}
		decoded.boundary = *payload.Boundary
	}
	*v = decoded
	return nil
}
