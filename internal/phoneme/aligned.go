package phoneme

import (
	"errors"
	"fmt"
)

// ErrLengthMismatch is returned when a position-wise comparison is requested
// for sequences of different lengths.
var ErrLengthMismatch = errors.New("phoneme: sequences differ in length")

// Align classifies every index of two equal-length sequences.
func Align(a, b Sequence) ([]Severity, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	severities := make([]Severity, len(a))
	for i := range a {
		severities[i] = Classify(a[i], b[i])
	}
	return severities, nil
}

// worstOf returns the highest severity in the list.
func worstOf(severities []Severity) Severity {
	worst := Match
	for _, severity := range severities {
		if severity > worst {
			worst = severity
		}
	}
	return worst
}
