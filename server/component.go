package server

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/transcriptor/component"
)

const componentName = "http-server"

var (
	_ component.Component   = (*Component)(nil)
	_ component.Describable = (*Component)(nil)
)

// Component wraps Server to implement component.Component.
type Component struct {
	server *Server
}

// NewComponent returns a component.Component backed by the given Server.
func NewComponent(s *Server) *Component {
	return &Component{server: s}
}

// Name returns the component name used for registration.
func (sc *Component) Name() string { return componentName }

// Start starts the underlying HTTP server.
func (sc *Component) Start(ctx context.Context) error {
	return sc.server.Start(ctx)
}

// Stop gracefully shuts down the underlying HTTP server.
func (sc *Component) Stop(ctx context.Context) error {
	return sc.server.Stop(ctx)
}

// Health reports the server as healthy once constructed; a server that
// failed to bind never reaches the registry's health loop.
func (sc *Component) Health(ctx context.Context) component.Health {
	if sc.server.httpServer == nil {
		return component.Health{
			Name:    componentName,
			Status:  component.StatusUnhealthy,
			Message: "HTTP server not initialized",
		}
	}
	return component.Health{Name: componentName, Status: component.StatusHealthy}
}

// Describe returns the listen address and upload limit.
func (sc *Component) Describe() component.Description {
	limit := "unlimited"
	if sc.server.bodyLimit > 0 {
		limit = humanize.Bytes(uint64(sc.server.bodyLimit))
	}
	return component.Description{
		Type:    "server",
		Details: fmt.Sprintf("%s max_body=%s routes=%d", sc.server.Addr(), limit, len(sc.server.engine.Routes())),
	}
}
