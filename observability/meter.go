package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/gopar/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (development, staging, production).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows plain HTTP to the collector.
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the global OpenTelemetry meter provider with an
// OTLP HTTP exporter. The provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(ctx, config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		logger.FieldService, config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric names recorded by EngineMetrics.
const (
	MetricCalls          = "gopar.calls"
	MetricCallDuration   = "gopar.call.duration"
	MetricCallsActive    = "gopar.calls.active"
	MetricSegments       = "gopar.segments"
	MetricSegmentSkipped = "gopar.segments.skipped"
	MetricTasksActive    = "gopar.tasks.active"
	MetricSlotsInUse     = "gopar.slots.in_use"
	MetricSlotsRejected  = "gopar.slots.rejected"
)

// EngineMetrics holds the instruments recorded by the parallel engine. A nil
// *EngineMetrics is valid and records nothing.
type EngineMetrics struct {
	calls        metric.Int64Counter
	callDuration metric.Float64Histogram
	callsActive  metric.Int64UpDownCounter
	segments     metric.Int64Counter
	skipped      metric.Int64Counter
	tasksActive  metric.Int64UpDownCounter
	slotsInUse   metric.Int64UpDownCounter
	slotRejects  metric.Int64Counter
}

// NewEngineMetrics creates the engine instruments on the given meter.
func NewEngineMetrics(meter metric.Meter) (*EngineMetrics, error) {
	calls, err := meter.Int64Counter(MetricCalls,
		metric.WithDescription("Aggregate calls by operation and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricCalls, err)
	}

	callDuration, err := meter.Float64Histogram(MetricCallDuration,
		metric.WithDescription("Duration of aggregate calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricCallDuration, err)
	}

	callsActive, err := meter.Int64UpDownCounter(MetricCallsActive,
		metric.WithDescription("Aggregate calls currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricCallsActive, err)
	}

	segments, err := meter.Int64Counter(MetricSegments,
		metric.WithDescription("Segments dispatched to tasks"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSegments, err)
	}

	skipped, err := meter.Int64Counter(MetricSegmentSkipped,
		metric.WithDescription("Segment tasks skipped because the call was already resolved"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSegmentSkipped, err)
	}

	tasksActive, err := meter.Int64UpDownCounter(MetricTasksActive,
		metric.WithDescription("Segment tasks currently running"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricTasksActive, err)
	}

	slotsInUse, err := meter.Int64UpDownCounter(MetricSlotsInUse,
		metric.WithDescription("In-flight slots held by bounded calls"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricSlotsInUse, err)
	}

	slotRejects, err := meter.Int64Counter(MetricSlotsRejected,
		metric.WithDescription("Slot waits abandoned because the call was decided"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricSlotsRejected, err)
	}

	return &EngineMetrics{
		calls:        calls,
		callDuration: callDuration,
		callsActive:  callsActive,
		segments:     segments,
		skipped:      skipped,
		tasksActive:  tasksActive,
		slotsInUse:   slotsInUse,
		slotRejects:  slotRejects,
	}, nil
}

// RecordCallStart increments the active call count.
func (m *EngineMetrics) RecordCallStart(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.callsActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordCallEnd decrements active calls and records the finished call.
func (m *EngineMetrics) RecordCallEnd(ctx context.Context, operation, outcome string, stats CallStats, duration time.Duration) {
	if m == nil {
		return
	}
	op := attribute.String(AttrOperation, operation)
	m.callsActive.Add(ctx, -1, metric.WithAttributes(op))
	m.calls.Add(ctx, 1, metric.WithAttributes(op, attribute.String(AttrOutcome, outcome)))
	m.callDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(op, attribute.String(AttrOutcome, outcome)))
	if stats.Segments > 0 {
		m.segments.Add(ctx, int64(stats.Segments), metric.WithAttributes(op))
	}
	if stats.Skipped > 0 {
		m.skipped.Add(ctx, int64(stats.Skipped), metric.WithAttributes(op))
	}
}

// RecordTaskStart increments the running task count.
func (m *EngineMetrics) RecordTaskStart(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.tasksActive.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordTaskEnd decrements the running task count.
func (m *EngineMetrics) RecordTaskEnd(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.tasksActive.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordSlotAcquired increments the held slot count of a bounded call.
func (m *EngineMetrics) RecordSlotAcquired(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.slotsInUse.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordSlotReleased decrements the held slot count of a bounded call.
func (m *EngineMetrics) RecordSlotReleased(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.slotsInUse.Add(ctx, -1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}

// RecordSlotRejected counts a slot wait that ended without a slot.
func (m *EngineMetrics) RecordSlotRejected(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.slotRejects.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrOperation, operation)))
}
