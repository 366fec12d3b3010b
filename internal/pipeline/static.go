package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"phonediff/internal/config"
	"phonediff/internal/phoneme"
)

// ErrNotInFixture is returned for sentences a static fixture does not list.
var ErrNotInFixture = errors.New("pipeline: sentence not in fixture")

// StaticPipeline answers from a fixed sentence → tokens table.
type StaticPipeline struct {
	id        string
	sentences map[string]phoneme.Sequence
}

type staticFile struct {
	Sentences map[string][]string `yaml:"sentences"`
}

// NewStatic builds a static pipeline from an in-memory table.
func NewStatic(id string, sentences map[string]phoneme.Sequence) *StaticPipeline {
	return &StaticPipeline{id: id, sentences: sentences}
}

// LoadStatic reads a YAML fixture with a top-level "sentences" mapping.
func LoadStatic(id, path string) (*StaticPipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var file staticFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	sentences := make(map[string]phoneme.Sequence, len(file.Sentences))
	for sentence, tokens := range file.Sentences {
		sentences[sentence] = phoneme.Sequence(tokens)
	}
	return NewStatic(id, sentences), nil
}

func (p *StaticPipeline) ID() string   { return p.id }
func (p *StaticPipeline) Kind() string { return config.KindStatic }
func (p *StaticPipeline) Close() error { return nil }

// Phonemize looks the sentence up.
func (p *StaticPipeline) Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tokens, ok := p.sentences[sentence]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotInFixture, sentence)
	}
	return phoneme.Sequence(append([]string(nil), tokens...)), nil
}
