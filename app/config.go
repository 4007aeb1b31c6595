package app

import (
	"fmt"

	"github.com/kbukum/transcriptor/config"
	"github.com/kbukum/transcriptor/media"
	"github.com/kbukum/transcriptor/observability"
	"github.com/kbukum/transcriptor/server"
	"github.com/kbukum/transcriptor/transcriber"
	"github.com/kbukum/transcriptor/transcription"
	"github.com/kbukum/transcriptor/validation"
	"github.com/kbukum/transcriptor/version"
)

// ServiceName is the default service name and config search key.
const ServiceName = "transcriptor"

// Config is the complete service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server      server.Config        `yaml:"server" mapstructure:"server"`
	Media       media.Config         `yaml:"media" mapstructure:"media"`
	Transcriber transcriber.Config   `yaml:"transcriber" mapstructure:"transcriber"`
	Engine      transcription.Config `yaml:"engine" mapstructure:"engine"`
	Tracing     observability.Config `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults fills every unset field.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Media.ApplyDefaults()
	c.Transcriber.ApplyDefaults()
	c.Engine.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate checks the base service fields, then every section's tags.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.%w", err)
	}
	return nil
}
