// Package observability wires OpenTelemetry tracing and metrics.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.TracerConfigFrom(cfg, "transcriptor", version, env))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe)
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("transcriptor"))
//	metrics.RecordTranscription(ctx, observability.OutcomeOK, elapsed)
//
// Without InitTracer/InitMeter the global no-op providers are used, so
// instrumented code runs unchanged when telemetry is disabled.
package observability
