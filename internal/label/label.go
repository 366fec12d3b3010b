// Package label reads phonemes out of HTS-style full-context labels as
// emitted by OpenJTalk and compatible front-ends.
//
// A label starts with the quinphone p1^p2-p3+p4=p5 followed by /A: and
// further context fields. Only the current phoneme p3 is of interest here.
package label

import (
	"bufio"
	"fmt"
	"strings"

	"phonediff/internal/phoneme"
)

// Undefined is the placeholder used for absent context values.
const Undefined = "xx"

// Current returns the current phoneme of one label line. Lines produced
// with timing information ("start end label") are accepted. ok is false
// when the current phoneme is undefined.
func Current(line string) (current string, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, fmt.Errorf("label: empty line")
	}
	quinphone := fields[len(fields)-1]
	if i := strings.Index(quinphone, "/A:"); i >= 0 {
		quinphone = quinphone[:i]
	}
	minus := strings.IndexByte(quinphone, '-')
	if minus < 0 || !strings.Contains(quinphone[:minus], "^") {
		return "", false, fmt.Errorf("label: missing p2-p3 separator in %q", line)
	}
	rest := quinphone[minus+1:]
	plus := strings.IndexByte(rest, '+')
	if plus < 0 {
		return "", false, fmt.Errorf("label: missing p3+p4 separator in %q", line)
	}
	current = rest[:plus]
	if current == "" {
		return "", false, fmt.Errorf("label: empty current phoneme in %q", line)
	}
	if current == Undefined {
		return "", false, nil
	}
	return current, true, nil
}

// Phonemes extracts the current phoneme of every non-blank label line.
func Phonemes(text string) (phoneme.Sequence, error) {
	var seq phoneme.Sequence
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		current, ok, err := Current(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if ok {
			seq = append(seq, current)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("label: read labels: %w", err)
	}
	return seq, nil
}
