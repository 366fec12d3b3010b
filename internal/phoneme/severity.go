// Package phoneme compares two phoneme sequences produced for the same
// sentence and classifies how far they agree.
package phoneme

import "fmt"

// Sequence is an ordered list of phoneme tokens for one sentence.
type Sequence []string

// Severity grades the disagreement between two tokens.
type Severity int

const (
	// Match means the tokens are identical.
	Match Severity = iota
	// Light means the tokens differ only in ASCII letter case.
	Light
	// Fatal means the tokens differ beyond case.
	Fatal
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Match:
		return "match"
	case Light:
		return "light"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	switch s {
	case Match, Light, Fatal:
		return []byte(s.String()), nil
	}
	return nil, fmt.Errorf("phoneme: invalid severity %d", int(s))
}

// UnmarshalText decodes a severity name.
func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "match":
		*s = Match
	case "light":
		*s = Light
	case "fatal":
		*s = Fatal
	default:
		return fmt.Errorf("phoneme: unknown severity %q", string(text))
	}
	return nil
}
