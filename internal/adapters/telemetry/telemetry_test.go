package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/dts/internal/adapters/telemetry"
	"go.trai.ch/dts/internal/core/ports"
	"go.trai.ch/dts/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestOTelTracer_StartSetsAttributes(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")
	_, span := tracer.Start(context.Background(), "transform", ports.WithAttribute("module", "src/a.ts"))
	span.SetAttribute("changed", true)
	span.SetAttribute("modules", 3)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "transform", spans[0].Name())
	assert.ElementsMatch(t, []attribute.KeyValue{
		attribute.String("module", "src/a.ts"),
		attribute.Bool("changed", true),
		attribute.Int("modules", 3),
	}, spans[0].Attributes())
}

func TestOTelTracer_AttributeConversion(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")
	_, span := tracer.Start(context.Background(), "build",
		ports.WithAttribute("plugin", "dts"),
		ports.WithAttribute("entries", []string{"index", "cli"}),
		ports.WithAttribute("elapsed", 1500*time.Microsecond),
	)
	span.SetAttribute("error", errors.New("boom"))
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("unit", struct{ ID int }{ID: 2})
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("elapsed", "1.5ms"),
		attribute.StringSlice("entries", []string{"index", "cli"}),
		attribute.String("plugin", "dts"),
		attribute.String("error", "boom"),
		attribute.Float64("ratio", 0.5),
		attribute.String("unit", "{2}"),
	}, spans[0].Attributes())
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")
	_, span := tracer.Start(context.Background(), "build")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	assert.Len(t, spans[0].Events(), 1)
}

func TestReporter_LogsFinishedSpans(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Debug(gomock.Any()).DoAndReturn(func(msg string) {
		assert.True(t, strings.HasPrefix(msg, "render chunk=index.d.ts ("), msg)
	}).Times(1)

	tp := telemetry.NewProvider(logger)
	tracer := telemetry.NewOTelTracerFromProvider(tp, "test")

	_, span := tracer.Start(context.Background(), "render", ports.WithAttribute("chunk", "index.d.ts"))
	span.End()

	require.NoError(t, tp.Shutdown(context.Background()))
}

func TestFormatSpan(t *testing.T) {
	got := telemetry.FormatSpan(
		"transform",
		[]attribute.KeyValue{attribute.String("module", "src/a.ts")},
		1500*time.Microsecond,
		true,
	)
	assert.Equal(t, "transform module=src/a.ts (1.5ms) failed", got)
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()
	ctx := context.Background()

	got, span := tracer.Start(ctx, "noop")
	assert.Equal(t, ctx, got)

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	span.End()
}
