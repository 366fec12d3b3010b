// Package pipeline adapts text-to-phoneme front-ends to a common interface.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"phonediff/internal/config"
	"phonediff/internal/phoneme"
)

// ErrUnknownKind is returned by New for an unsupported pipeline kind.
var ErrUnknownKind = errors.New("pipeline: unknown kind")

// Phonemizer turns one sentence into a phoneme sequence.
type Phonemizer interface {
	ID() string
	Kind() string
	Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error)
	Close() error
}

// New builds the pipeline described by cfg. Any failure here is an
// initialization failure: missing dictionaries, unreachable engines and
// missing executables are all reported before a run starts.
func New(ctx context.Context, cfg config.PipelineConfig) (Phonemizer, error) {
	var (
		p   Phonemizer
		err error
	)
	switch cfg.Kind {
	case config.KindKana:
		p, err = NewKana(cfg.ID, cfg.Dictionary, cfg.Devoice)
	case config.KindCommand:
		p, err = NewCommand(cfg.ID, cfg.Command, cfg.Format, seconds(cfg.TimeoutSeconds))
	case config.KindVoicevox:
		p, err = NewVoicevox(ctx, VoicevoxOptions{
			ID:                cfg.ID,
			Endpoint:          cfg.Endpoint,
			Speaker:           cfg.Speaker,
			RequestsPerSecond: cfg.RequestsPerSecond,
			Timeout:           seconds(cfg.TimeoutSeconds),
		})
	case config.KindStatic:
		p, err = LoadStatic(cfg.ID, cfg.Fixture)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, cfg.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("init pipeline %s: %w", cfg.ID, err)
	}
	return Traced(p), nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
