// Package kana turns Japanese text into OpenJTalk-style phonemes using a
// surface→reading dictionary and kana spelling rules.
package kana

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Lexicon maps surface strings to katakana readings.
type Lexicon struct {
	entries map[string]string
	longest int
}

type lexiconFile struct {
	Entries map[string]string `yaml:"entries"`
}

// NewLexicon builds a lexicon from surface→reading pairs. Keys and readings
// are NFKC-normalized; readings may be written in hiragana.
func NewLexicon(entries map[string]string) (*Lexicon, error) {
	lex := &Lexicon{entries: make(map[string]string, len(entries))}
	for surface, reading := range entries {
		surface = norm.NFKC.String(strings.TrimSpace(surface))
		reading = toKatakana(norm.NFKC.String(strings.TrimSpace(reading)))
		if surface == "" {
			return nil, fmt.Errorf("lexicon: empty surface")
		}
		if reading == "" {
			return nil, fmt.Errorf("lexicon: empty reading for %q", surface)
		}
		lex.entries[surface] = reading
		if n := utf8.RuneCountInString(surface); n > lex.longest {
			lex.longest = n
		}
	}
	return lex, nil
}

// LoadLexicon reads a dictionary file. Files ending in .yml or .yaml hold an
// "entries" mapping; anything else is read as tab-separated surface/reading
// lines where blank lines and lines starting with # are ignored.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	var entries map[string]string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		entries, err = parseYAMLLexicon(data)
	default:
		entries, err = parseTSVLexicon(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", filepath.Base(path), err)
	}
	return NewLexicon(entries)
}

func parseYAMLLexicon(data []byte) (map[string]string, error) {
	var file lexiconFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, err
	}
	return file.Entries, nil
}

func parseTSVLexicon(data []byte) (map[string]string, error) {
	entries := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		columns := strings.Split(line, "\t")
		if len(columns) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 tab-separated columns, got %d", lineNo, len(columns))
		}
		entries[columns[0]] = columns[1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Len reports the number of entries.
func (l *Lexicon) Len() int {
	if l == nil {
		return 0
	}
	return len(l.entries)
}

// match returns the reading and rune length of the longest entry that is a
// prefix of text.
func (l *Lexicon) match(text []rune) (string, int) {
	if l == nil {
		return "", 0
	}
	for n := min(l.longest, len(text)); n > 0; n-- {
		if reading, ok := l.entries[string(text[:n])]; ok {
			return reading, n
		}
	}
	return "", 0
}
