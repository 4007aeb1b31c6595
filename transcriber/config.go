package transcriber

import (
	"strings"
	"time"

	"github.com/kbukum/transcriptor/media"
)

// Config configures the orchestration of one transcription.
type Config struct {
	// Language is the fixed target language passed to the engine.
	Language string `yaml:"language" mapstructure:"language" validate:"required"`
	// ChunkSeconds is the window length and the single-call threshold.
	ChunkSeconds int `yaml:"chunk_seconds" mapstructure:"chunk_seconds" validate:"gte=1"`
	// MaxSegments caps the number of windows per request. Zero selects the
	// default; a negative value disables the cap.
	MaxSegments int `yaml:"max_segments" mapstructure:"max_segments" validate:"gte=-1"`
	// LegacySegmentation skips the duration probe and slices until a window
	// comes back empty.
	LegacySegmentation bool `yaml:"legacy_segmentation" mapstructure:"legacy_segmentation"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = "es"
	}
	if c.ChunkSeconds == 0 {
		c.ChunkSeconds = int(media.DefaultChunk / time.Second)
	}
	if c.MaxSegments == 0 {
		c.MaxSegments = 2880
	}
}

// Chunk returns the window length.
func (c Config) Chunk() time.Duration {
	return time.Duration(c.ChunkSeconds) * time.Second
}

// SupportedFormats lists the accepted upload extensions.
var SupportedFormats = []string{"opus", "mp3", "wav", "m4a"}

// NormalizeExt lower-cases ext and strips a leading dot.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// ExtFromFilename returns the normalized text after the last dot of name,
// or the whole name when it has none.
func ExtFromFilename(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return NormalizeExt(name[i+1:])
	}
	return NormalizeExt(name)
}

// SupportedFormat reports whether ext is an accepted upload extension.
func SupportedFormat(ext string) bool {
	ext = NormalizeExt(ext)
	for _, f := range SupportedFormats {
		if f == ext {
			return true
		}
	}
	return false
}
