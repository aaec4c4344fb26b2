package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gopar/errors"
)

// CallStats summarises how a call used its segments.
type CallStats struct {
	Segments int
	Skipped  int
}

// CallScope tracks the span and metrics of one aggregate call.
type CallScope struct {
	Operation string
	CallID    string
	StartTime time.Time
	Metrics   *EngineMetrics
	span      trace.Span
}

type callScopeKey struct{}

// StartCall starts the call span and records the call start. A nil tracer
// uses the global provider; nil metrics record nothing.
func StartCall(ctx context.Context, tracer trace.Tracer, metrics *EngineMetrics, operation, callID string) (context.Context, *CallScope) {
	if tracer == nil {
		tracer = DefaultTracer()
	}
	ctx, span := tracer.Start(ctx, SpanPrefix+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String(AttrOperation, operation),
			attribute.String(AttrCallID, callID),
		),
	)
	metrics.RecordCallStart(ctx, operation)

	cs := &CallScope{
		Operation: operation,
		CallID:    callID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	return context.WithValue(ctx, callScopeKey{}, cs), cs
}

// CallScopeFromContext retrieves the CallScope from context, or nil.
func CallScopeFromContext(ctx context.Context) *CallScope {
	if cs, ok := ctx.Value(callScopeKey{}).(*CallScope); ok {
		return cs
	}
	return nil
}

// Annotate adds attributes to the call span.
func (s *CallScope) Annotate(attrs ...attribute.KeyValue) {
	s.span.SetAttributes(attrs...)
}

// Event adds a named event to the call span.
func (s *CallScope) Event(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// End ends the span and records the call-end metrics.
func (s *CallScope) End(ctx context.Context, outcome string, stats CallStats, err error) {
	duration := time.Since(s.StartTime)

	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
		if appErr, ok := errors.AsAppError(err); ok {
			s.span.SetAttributes(attribute.String(AttrErrorCode, string(appErr.Code)))
		}
	}
	s.span.SetAttributes(
		attribute.String(AttrOutcome, outcome),
		attribute.Int(AttrSegments, stats.Segments),
		attribute.Int(AttrSkipped, stats.Skipped),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	s.span.End()

	s.Metrics.RecordCallEnd(ctx, s.Operation, outcome, stats, duration)
}

// Duration returns the elapsed time since the call started.
func (s *CallScope) Duration() time.Duration {
	return time.Since(s.StartTime)
}
