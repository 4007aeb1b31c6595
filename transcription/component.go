package transcription

import (
	"context"
	"fmt"
	"time"

	"github.com/kbukum/transcriptor/component"
	"github.com/kbukum/transcriptor/logger"
)

const (
	componentName = "engine"
	probeTimeout  = 5 * time.Second
)

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component exposes a Provider to the component registry. The engine has no
// lifecycle of its own (the sidecar or hosted API owns the model); the
// component reports reachability.
type Component struct {
	provider Provider
	cfg      Config
	log      *logger.Logger
}

// NewComponent wraps provider configured by cfg.
func NewComponent(provider Provider, cfg Config, log *logger.Logger) *Component {
	if log == nil {
		log = logger.Nop()
	}
	return &Component{provider: provider, cfg: cfg, log: log.WithComponent(componentName)}
}

// Name returns the component name used for registration.
func (c *Component) Name() string { return componentName }

// Start probes the backend once. An unreachable backend is logged, not
// fatal: a sidecar may finish loading its model after the service is up.
func (c *Component) Start(ctx context.Context) error {
	if !c.available(ctx) {
		c.log.Warn("speech engine not reachable at startup", logger.Fields(
			logger.FieldBackend, c.provider.Name(),
			"url", c.cfg.URL,
		))
	}
	return nil
}

// Stop is a no-op.
func (c *Component) Stop(context.Context) error { return nil }

// Health reports whether the backend answers its availability probe.
func (c *Component) Health(ctx context.Context) component.Health {
	if !c.available(ctx) {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: fmt.Sprintf("%s backend not reachable", c.provider.Name()),
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe summarizes the engine configuration.
func (c *Component) Describe() component.Description {
	return component.Description{
		Type: "engine",
		Details: fmt.Sprintf("%s model=%s compute=%s max_concurrent=%d",
			c.provider.Name(), c.cfg.Model, c.cfg.ComputeType, c.cfg.MaxConcurrent),
	}
}

func (c *Component) available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	return c.provider.IsAvailable(ctx)
}
