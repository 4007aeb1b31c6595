package app

import (
	"context"
	"errors"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/transcriptor/component"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/observability"
)

// telemetry installs the OTLP tracer and meter providers for the lifetime
// of the service. Disabled telemetry leaves the otel no-op globals in place.
type telemetry struct {
	cfg         observability.Config
	service     string
	version     string
	environment string
	log         *logger.Logger

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var (
	_ component.Component   = (*telemetry)(nil)
	_ component.Describable = (*telemetry)(nil)
)

func newTelemetry(cfg *Config, log *logger.Logger) *telemetry {
	return &telemetry{
		cfg:         cfg.Tracing,
		service:     cfg.Name,
		version:     cfg.Version,
		environment: cfg.Environment,
		log:         log.WithComponent("telemetry"),
	}
}

func (t *telemetry) Name() string { return "telemetry" }

func (t *telemetry) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}
	tp, err := observability.InitTracer(ctx, observability.TracerConfigFrom(t.cfg, t.service, t.version, t.environment))
	if err != nil {
		return err
	}
	mp, err := observability.InitMeter(ctx, observability.MeterConfigFrom(t.cfg, t.service, t.version, t.environment))
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp = tp, mp
	return nil
}

// Stop flushes pending spans and metrics.
func (t *telemetry) Stop(ctx context.Context) error {
	var errs []error
	if t.tp != nil {
		errs = append(errs, t.tp.Shutdown(ctx))
	}
	if t.mp != nil {
		errs = append(errs, t.mp.Shutdown(ctx))
	}
	t.tp, t.mp = nil, nil
	return errors.Join(errs...)
}

func (t *telemetry) Health(context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if !t.cfg.Enabled {
		h.Message = "disabled"
	}
	return h
}

func (t *telemetry) Describe() component.Description {
	if !t.cfg.Enabled {
		return component.Description{Type: "telemetry", Details: "disabled"}
	}
	return component.Description{
		Type:    "telemetry",
		Details: fmt.Sprintf("otlp endpoint=%s sample_rate=%.2f", t.cfg.Endpoint, t.cfg.SampleRate),
	}
}
