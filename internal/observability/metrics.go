package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OTel metric instruments for phonediff runs.
type Metrics struct {
	Sentences        metric.Int64Counter
	PipelineErrors   metric.Int64Counter
	PipelineDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on the global meter provider.
func NewMetrics() (*Metrics, error) {
	return NewMetricsWithMeter(otel.Meter("phonediff"))
}

// NewMetricsWithMeter creates the instruments on a specific meter.
func NewMetricsWithMeter(meter metric.Meter) (*Metrics, error) {
	sentences, err := meter.Int64Counter("phonediff.sentences",
		metric.WithDescription("Number of compared sentences by verdict"),
	)
	if err != nil {
		return nil, err
	}

	pipelineErrors, err := meter.Int64Counter("phonediff.pipeline.errors",
		metric.WithDescription("Number of failed pipeline calls"),
	)
	if err != nil {
		return nil, err
	}

	pipelineDuration, err := meter.Float64Histogram("phonediff.pipeline.duration_seconds",
		metric.WithDescription("Time spent in one pipeline call"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		Sentences:        sentences,
		PipelineErrors:   pipelineErrors,
		PipelineDuration: pipelineDuration,
	}, nil
}

// RecordSentence records one sentence outcome.
func (m *Metrics) RecordSentence(ctx context.Context, verdict string) {
	m.Sentences.Add(ctx, 1, metric.WithAttributes(attribute.String("verdict", verdict)))
}

// RecordPipelineCall records the duration of a pipeline call and counts it
// as an error when err is set.
func (m *Metrics) RecordPipelineCall(ctx context.Context, pipelineID string, elapsed time.Duration, err error) {
	attrs := metric.WithAttributes(attribute.String("pipeline", pipelineID))
	m.PipelineDuration.Record(ctx, elapsed.Seconds(), attrs)
	if err != nil {
		m.PipelineErrors.Add(ctx, 1, attrs)
	}
}
