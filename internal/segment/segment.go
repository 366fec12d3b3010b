// Package segment splits input text into sentences.
package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultDelimiters are the sentence-final and quotation marks used for
// Japanese prose.
const DefaultDelimiters = "。「」"

// Whitespace policies.
const (
	WhitespaceRemove   = "remove"
	WhitespaceCollapse = "collapse"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Splitter cuts text on delimiter characters and normalizes whitespace.
type Splitter struct {
	delimiters *regexp.Regexp
	whitespace string
}

// NewSplitter builds a splitter for the given delimiter characters and
// whitespace policy.
func NewSplitter(delimiters, whitespace string) (*Splitter, error) {
	if delimiters == "" {
		return nil, fmt.Errorf("segment: delimiters are empty")
	}
	switch whitespace {
	case "", WhitespaceRemove:
		whitespace = WhitespaceRemove
	case WhitespaceCollapse:
	default:
		return nil, fmt.Errorf("segment: unknown whitespace policy %q", whitespace)
	}
	var class strings.Builder
	class.WriteString("[")
	for _, r := range delimiters {
		class.WriteString(regexp.QuoteMeta(string(r)))
	}
	class.WriteString("]")
	pattern, err := regexp.Compile(class.String())
	if err != nil {
		return nil, fmt.Errorf("segment: compile delimiters: %w", err)
	}
	return &Splitter{delimiters: pattern, whitespace: whitespace}, nil
}

// Split returns the non-empty sentences of text in order.
func (s *Splitter) Split(text string) []string {
	parts := s.delimiters.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		var sentence string
		if s.whitespace == WhitespaceCollapse {
			sentence = strings.TrimSpace(whitespaceRun.ReplaceAllString(part, " "))
		} else {
			sentence = whitespaceRun.ReplaceAllString(part, "")
		}
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}
	return sentences
}
