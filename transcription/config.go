package transcription

import "time"

// Config selects and configures the speech engine.
type Config struct {
	// Backend is the registered backend name.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"required"`
	// Model is the model-size identifier (e.g. "small").
	Model string `yaml:"model" mapstructure:"model" validate:"required"`
	// URL is the backend endpoint. Empty selects the backend default.
	URL string `yaml:"url" mapstructure:"url" validate:"omitempty,url"`
	// ComputeType selects reduced-precision inference (e.g. "int8").
	ComputeType string `yaml:"compute_type" mapstructure:"compute_type"`
	// Threads caps inference threads. Zero leaves the backend default.
	Threads int `yaml:"threads" mapstructure:"threads" validate:"gte=0"`
	// MaxConcurrent bounds simultaneous Transcribe calls process-wide.
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent" validate:"gte=1"`
	// Timeout bounds one backend call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// APIKey authenticates against hosted backends.
	APIKey string `yaml:"api_key" mapstructure:"api_key" validate:"required_if=Backend openai"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = "whisper"
	}
	if c.Model == "" {
		c.Model = "small"
	}
	if c.ComputeType == "" {
		c.ComputeType = "int8"
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 1
	}
	if c.Timeout == 0 {
		c.Timeout = 10 * time.Minute
	}
}
