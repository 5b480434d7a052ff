package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/dts/internal/core/ports"
)

// Reporter implements sdktrace.SpanProcessor by logging every finished span at debug level.
type Reporter struct {
	logger ports.Logger
}

// NewReporter returns a new Reporter.
func NewReporter(logger ports.Logger) *Reporter {
	return &Reporter{
		logger: logger,
	}
}

// OnStart does nothing.
func (r *Reporter) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd logs the span's name, attributes and duration.
func (r *Reporter) OnEnd(s sdktrace.ReadOnlySpan) {
	if r.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	r.logger.Debug(FormatSpan(s.Name(), s.Attributes(), s.EndTime().Sub(s.StartTime()), s.Status().Code == codes.Error))
}

// ForceFlush does nothing.
func (r *Reporter) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (r *Reporter) Shutdown(_ context.Context) error {
	return nil
}

// FormatSpan renders one finished span as a single log line, e.g. "transform module=src/a.ts (1.2ms)".
func FormatSpan(name string, attrs []attribute.KeyValue, d time.Duration, failed bool) string {
	var b strings.Builder
	b.WriteString(name)
	for _, kv := range attrs {
		fmt.Fprintf(&b, " %s=%s", kv.Key, kv.Value.Emit())
	}
	fmt.Fprintf(&b, " (%s)", d.Round(time.Microsecond))
	if failed {
		b.WriteString(" failed")
	}
	return b.String()
}

// NewProvider creates a tracer provider that reports finished spans to logger.
func NewProvider(logger ports.Logger) *sdktrace.TracerProvider {
	return sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithSpanProcessor(NewReporter(logger)),
	)
}
