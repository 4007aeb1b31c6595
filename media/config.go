package media

// Config configures the media transcoding layer.
type Config struct {
	// FFmpegPath is the ffmpeg executable (resolved via PATH).
	FFmpegPath string `yaml:"ffmpeg_path" mapstructure:"ffmpeg_path" validate:"required"`
	// FFprobePath is the ffprobe executable, used only in passthrough mode.
	FFprobePath string `yaml:"ffprobe_path" mapstructure:"ffprobe_path" validate:"required"`
	// SampleRate of the canonical waveform in Hz.
	SampleRate int `yaml:"sample_rate" mapstructure:"sample_rate" validate:"oneof=8000 16000"`
	// Passthrough skips normalization: uploads are stored as-is and probed with ffprobe.
	Passthrough bool `yaml:"passthrough" mapstructure:"passthrough"`
	// TempDir is the root for request workspaces. Empty means os.TempDir().
	TempDir string `yaml:"temp_dir" mapstructure:"temp_dir"`
	// TempPrefix starts every workspace directory name.
	TempPrefix string `yaml:"temp_prefix" mapstructure:"temp_prefix" validate:"required"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.FFmpegPath == "" {
		c.FFmpegPath = "ffmpeg"
	}
	if c.FFprobePath == "" {
		c.FFprobePath = "ffprobe"
	}
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.TempPrefix == "" {
		c.TempPrefix = "transcriptor"
	}
}
