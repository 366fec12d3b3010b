package pipeline

import (
	"context"

	"phonediff/internal/config"
	"phonediff/internal/kana"
	"phonediff/internal/phoneme"
)

// KanaPipeline runs the built-in dictionary and kana-rule analyzer.
type KanaPipeline struct {
	id       string
	analyzer *kana.Analyzer
}

// NewKana loads the optional dictionary and builds the analyzer.
func NewKana(id, dictionary string, devoice bool) (*KanaPipeline, error) {
	var lexicon *kana.Lexicon
	if dictionary != "" {
		loaded, err := kana.LoadLexicon(dictionary)
		if err != nil {
			return nil, err
		}
		lexicon = loaded
	}
	return &KanaPipeline{
		id:       id,
		analyzer: kana.NewAnalyzer(lexicon, kana.Options{Devoice: devoice}),
	}, nil
}

func (p *KanaPipeline) ID() string   { return p.id }
func (p *KanaPipeline) Kind() string { return config.KindKana }
func (p *KanaPipeline) Close() error { return nil }

// Phonemize analyzes one sentence.
func (p *KanaPipeline) Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.analyzer.Phonemize(sentence)
}
