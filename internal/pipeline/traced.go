package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"phonediff/internal/phoneme"
)

const tracerName = "phonediff/pipeline"

type traced struct {
	Phonemizer
	tracer trace.Tracer
}

// Traced wraps a pipeline so every call runs inside a span.
func Traced(p Phonemizer) Phonemizer {
	return traced{Phonemizer: p, tracer: otel.Tracer(tracerName)}
}

func (t traced) Phonemize(ctx context.Context, sentence string) (phoneme.Sequence, error) {
	ctx, span := t.tracer.Start(ctx, "pipeline.phonemize", trace.WithAttributes(
		attribute.String("pipeline.id", t.ID()),
		attribute.String("pipeline.kind", t.Kind()),
	))
	defer span.End()
	tokens, err := t.Phonemizer.Phonemize(ctx, sentence)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("pipeline.phonemes", len(tokens)))
	return tokens, nil
}
