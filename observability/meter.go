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

	"github.com/kbukum/transcriptor/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
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

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
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
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Transcription outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the instruments recorded by the transcription pipeline.
type Metrics struct {
	transcriptions metric.Int64Counter
	duration       metric.Float64Histogram
	segments       metric.Int64Counter
	errors         metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	transcriptions, err := meter.Int64Counter("transcriptions_total",
		metric.WithDescription("Transcription requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcriptions_total counter: %w", err)
	}

	duration, err := meter.Float64Histogram("transcription_duration",
		metric.WithDescription("Wall time of a transcription request"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription_duration histogram: %w", err)
	}

	segments, err := meter.Int64Counter("transcription_segments_total",
		metric.WithDescription("Audio segments sent to the speech engine"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription_segments_total counter: %w", err)
	}

	errs, err := meter.Int64Counter("transcription_errors_total",
		metric.WithDescription("Failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating transcription_errors_total counter: %w", err)
	}

	return &Metrics{
		transcriptions: transcriptions,
		duration:       duration,
		segments:       segments,
		errors:         errs,
	}, nil
}

// RecordTranscription records one finished request.
func (m *Metrics) RecordTranscription(ctx context.Context, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.transcriptions.Add(ctx, 1, attrs)
	m.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordSegments adds n transcribed segments.
func (m *Metrics) RecordSegments(ctx context.Context, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.segments.Add(ctx, int64(n))
}

// RecordError records a failure by code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}
