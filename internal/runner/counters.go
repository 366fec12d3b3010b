package runner

import (
	"fmt"

	"phonediff/internal/phoneme"
)

// Outcome is the per-sentence result class that feeds the counters.
type Outcome string

const (
	OutcomeMatch Outcome = "match"
	OutcomeLight Outcome = "light"
	OutcomeFatal Outcome = "fatal"
	OutcomeError Outcome = "error"
)

// OutcomeOf maps a verdict to its counter. Length mismatches count as fatal.
func OutcomeOf(v phoneme.Verdict) Outcome {
	switch v.Worst() {
	case phoneme.Match:
		return OutcomeMatch
	case phoneme.Light:
		return OutcomeLight
	default:
		return OutcomeFatal
	}
}

// rank orders outcomes from best to worst.
func (o Outcome) rank() int {
	switch o {
	case OutcomeMatch:
		return 0
	case OutcomeLight:
		return 1
	case OutcomeFatal:
		return 2
	default:
		return 3
	}
}

// Worse reports whether o is a worse outcome than other.
func (o Outcome) Worse(other Outcome) bool {
	return o.rank() > other.rank()
}

// Counters tallies sentence outcomes. They only grow.
type Counters struct {
	Matches int `json:"matches"`
	Light   int `json:"light_mismatches"`
	Fatal   int `json:"fatal_mismatches"`
	Errors  int `json:"errors"`
}

// Record counts one outcome.
func (c *Counters) Record(o Outcome) {
	switch o {
	case OutcomeMatch:
		c.Matches++
	case OutcomeLight:
		c.Light++
	case OutcomeFatal:
		c.Fatal++
	default:
		c.Errors++
	}
}

// Add folds other into c.
func (c *Counters) Add(other Counters) {
	c.Matches += other.Matches
	c.Light += other.Light
	c.Fatal += other.Fatal
	c.Errors += other.Errors
}

// Total is the number of sentences counted.
func (c Counters) Total() int {
	return c.Matches + c.Light + c.Fatal + c.Errors
}

// Count returns the counter for one outcome.
func (c Counters) Count(o Outcome) int {
	switch o {
	case OutcomeMatch:
		return c.Matches
	case OutcomeLight:
		return c.Light
	case OutcomeFatal:
		return c.Fatal
	default:
		return c.Errors
	}
}

func (c Counters) String() string {
	return fmt.Sprintf("%d matches, %d light mismatches, %d fatal mismatches, %d errors", c.Matches, c.Light, c.Fatal, c.Errors)
}
