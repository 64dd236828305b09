package utils

import (
	"context"

	"github.com/amaumene/moviemate/internal/config"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans created by this service
const TracerName = "github.com/amaumene/moviemate"

// NewTracerProvider creates the tracer provider. When tracing is enabled
// every finished span is written to the logger at debug level; otherwise
// nothing is sampled.
func NewTracerProvider(cfg *config.Config, logger zerolog.Logger) (*sdktrace.TracerProvider, func()) {
	sampler := sdktrace.NeverSample()
	if cfg.TracingEnabled {
		sampler = sdktrace.AlwaysSample()
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sampler),
		sdktrace.WithSpanProcessor(NewSpanLogger(logger)),
	)

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.Error().Err(err).Msg("Failed to shut down tracer provider")
		}
	}
	return tp, cleanup
}

// NewTracer returns the service tracer from tp
func NewTracer(tp *sdktrace.TracerProvider) trace.Tracer {
	return tp.Tracer(TracerName)
}

// SpanLogger is a span processor that logs finished spans
type SpanLogger struct {
	logger zerolog.Logger
}

// NewSpanLogger creates a span processor writing to logger
func NewSpanLogger(logger zerolog.Logger) *SpanLogger {
	return &SpanLogger{logger: logger.With().Str("component", "tracing").Logger()}
}

func (s *SpanLogger) OnStart(parent context.Context, span sdktrace.ReadWriteSpan) {}

func (s *SpanLogger) OnEnd(span sdktrace.ReadOnlySpan) {
	event := s.logger.Debug().
		Str("span", span.Name()).
		Str("trace_id", span.SpanContext().TraceID().String()).
		Str("span_id", span.SpanContext().SpanID().String()).
		Dur("duration", span.EndTime().Sub(span.StartTime())).
		Str("status", span.Status().Code.String())

	for _, attr := range span.Attributes() {
		event = event.Str(string(attr.Key), attr.Value.Emit())
	}
	event.Msg("Span finished")
}

func (s *SpanLogger) Shutdown(ctx context.Context) error {
	return nil
}

func (s *SpanLogger) ForceFlush(ctx context.Context) error {
	return nil
}
