// Package observability provides OpenTelemetry tracing and metrics for the
// parallel engine.
//
// Every aggregate call runs inside a CallScope: a span named
// "parallel.<Operation>" plus the EngineMetrics instruments (calls by
// outcome, call duration, dispatched and skipped segments, running tasks).
//
// Export:
//
//	shutdown, err := observability.Init(ctx, cfg.Telemetry, "parbench", version.Short(), "production")
//	defer shutdown(ctx)
//
// Engine wiring:
//
//	metrics, err := observability.NewEngineMetrics(observability.Meter("gopar"))
//	engine, err := parallel.New(cfg, parallel.WithMetrics(metrics))
package observability
