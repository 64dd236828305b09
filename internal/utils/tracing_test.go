package utils

import (
	"bytes"
	"context"
	"testing"

	"github.com/amaumene/moviemate/internal/config"
	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestTracerProviderLogsSpans(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "debug", "json")

	tp, cleanup := NewTracerProvider(&config.Config{TracingEnabled: true}, logger)
	defer cleanup()

	_, span := NewTracer(tp).Start(context.Background(), "items.create")
	span.SetAttributes(attribute.Int64("item.id", 7))
	span.End()

	out := buf.String()
	assert.Contains(t, out, `"span":"items.create"`)
	assert.Contains(t, out, `"item.id":"7"`)
	assert.Contains(t, out, `"component":"tracing"`)
	assert.Contains(t, out, `"trace_id"`)
}

func TestTracerProviderDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf, "debug", "json")

	tp, cleanup := NewTracerProvider(&config.Config{}, logger)
	defer cleanup()

	_, span := NewTracer(tp).Start(context.Background(), "items.get")
	span.End()

	assert.False(t, span.SpanContext().IsSampled())
	assert.Empty(t, buf.String())
}
