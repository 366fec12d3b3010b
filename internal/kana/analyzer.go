package kana

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"phonediff/internal/phoneme"
)

// ErrNoReading is returned when part of a sentence has neither a dictionary
// entry nor a kana spelling.
var ErrNoReading = errors.New("kana: no reading")

// pauseRune marks a pause inside the reading buffer.
const pauseRune = '、'

// Options tunes the analyzer output.
type Options struct {
	// Devoice uppercases devoiced close vowels (k I t a), as OpenJTalk does.
	Devoice bool
}

// Analyzer converts sentences to phonemes. It keeps its working buffers
// between calls; they are refreshed under the lock before every sentence,
// so one Analyzer may be shared by goroutines.
type Analyzer struct {
	lexicon *Lexicon
	opts    Options

	mu      sync.Mutex
	reading []rune
	tokens  []string
}

// NewAnalyzer builds an analyzer over a lexicon. A nil lexicon accepts kana
// input only.
func NewAnalyzer(lexicon *Lexicon, opts Options) *Analyzer {
	return &Analyzer{lexicon: lexicon, opts: opts}
}

// Phonemize returns the phoneme sequence for one sentence, framed by
// silence.
func (a *Analyzer) Phonemize(sentence string) (phoneme.Sequence, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refresh()

	if err := a.read([]rune(norm.NFKC.String(sentence))); err != nil {
		return nil, err
	}
	if err := a.spell(); err != nil {
		return nil, err
	}
	if a.opts.Devoice {
		devoice(a.tokens)
	}
	return phoneme.Sequence(slices.Clone(a.tokens)), nil
}

// refresh clears the working buffers while keeping their capacity.
func (a *Analyzer) refresh() {
	a.reading = a.reading[:0]
	a.tokens = a.tokens[:0]
}

// read fills the reading buffer with katakana and pause marks.
func (a *Analyzer) read(text []rune) error {
	for i := 0; i < len(text); {
		if reading, n := a.lexicon.match(text[i:]); n > 0 {
			a.reading = append(a.reading, []rune(reading)...)
			i += n
			continue
		}
		r := text[i]
		i++
		switch {
		case unicode.IsSpace(r):
		case strings.ContainsRune(pauseMarks, r):
			a.reading = append(a.reading, pauseRune)
		case isKatakana(toKatakanaRune(r)):
			a.reading = append(a.reading, toKatakanaRune(r))
		default:
			return fmt.Errorf("%w for %q", ErrNoReading, string(r))
		}
	}
	return nil
}

// spell converts the reading buffer into phoneme tokens.
func (a *Analyzer) spell() error {
	a.tokens = append(a.tokens, Silence)
	lastVowel := ""
	spoken := false
	for i := 0; i < len(a.reading); {
		r := a.reading[i]
		switch r {
		case pauseRune:
			if last := a.tokens[len(a.tokens)-1]; last != Pause && last != Silence {
				a.tokens = append(a.tokens, Pause)
			}
			i++
			continue
		case 'ー':
			if lastVowel != "" {
				a.tokens = append(a.tokens, lastVowel)
			}
			i++
			continue
		}
		var mora []string
		if i+1 < len(a.reading) {
			mora = moraTable[string(a.reading[i:i+2])]
		}
		width := 2
		if mora == nil {
			mora = moraTable[string(r)]
			width = 1
		}
		if mora == nil {
			return fmt.Errorf("%w for kana %q", ErrNoReading, string(r))
		}
		a.tokens = append(a.tokens, mora...)
		if v := mora[len(mora)-1]; isVowel(v) {
			lastVowel = v
		}
		spoken = true
		i += width
	}
	if !spoken {
		return fmt.Errorf("%w: nothing to read", ErrNoReading)
	}
	if a.tokens[len(a.tokens)-1] == Pause {
		a.tokens[len(a.tokens)-1] = Silence
	} else {
		a.tokens = append(a.tokens, Silence)
	}
	return nil
}
