package server

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"

	"github.com/kbukum/transcriptor/validation"
)

// Config holds HTTP server configuration.
type Config struct {
	Host            string `yaml:"host" mapstructure:"host"`
	Port            int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     int    `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`         // seconds
	WriteTimeout    int    `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`       // seconds
	IdleTimeout     int    `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`         // seconds
	ShutdownTimeout int    `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" validate:"gte=0"` // seconds
	MaxBodySize     string `yaml:"max_body_size" mapstructure:"max_body_size"`                        // e.g. "100MB"
}

// ApplyDefaults sets default values for unset fields. Transcribing long
// audio keeps the response open for minutes, so the write timeout is wide.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 8000
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 120
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 1800
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 30
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "100MB"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if _, err := c.BodyLimit(); err != nil {
		return fmt.Errorf("server.max_body_size: %w", err)
	}
	return nil
}

// Addr returns host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// BodyLimit parses MaxBodySize ("100MB", "1GiB", "512 KB"). An empty value
// means no limit and returns 0.
func (c Config) BodyLimit() (int64, error) {
	if c.MaxBodySize == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%q is too large", c.MaxBodySize)
	}
	return int64(n), nil
}
