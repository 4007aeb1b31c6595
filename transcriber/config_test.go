package transcriber_test

import (
	"testing"
	"time"

	"github.com/kbukum/transcriptor/transcriber"
)

func TestConfigDefaults(t *testing.T) {
	var cfg transcriber.Config
	cfg.ApplyDefaults()
	if cfg.Language != "es" {
		t.Errorf("expected es, got %q", cfg.Language)
	}
	if cfg.Chunk() != 30*time.Second {
		t.Errorf("expected 30s chunk, got %s", cfg.Chunk())
	}
	if cfg.MaxSegments != 2880 {
		t.Errorf("expected 2880, got %d", cfg.MaxSegments)
	}
}

func TestConfigUnboundedSegments(t *testing.T) {
	cfg := transcriber.Config{MaxSegments: -1}
	cfg.ApplyDefaults()
	if cfg.MaxSegments != -1 {
		t.Errorf("a negative cap must survive defaults, got %d", cfg.MaxSegments)
	}
}

func TestSupportedFormat(t *testing.T) {
	tests := []struct {
		ext  string
		want bool
	}{
		{"opus", true},
		{"mp3", true},
		{"wav", true},
		{"m4a", true},
		{"WAV", true},
		{".m4a", true},
		{"txt", false},
		{"ogg", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := transcriber.SupportedFormat(tt.ext); got != tt.want {
			t.Errorf("SupportedFormat(%q) = %v, want %v", tt.ext, got, tt.want)
		}
	}
}

func TestExtFromFilename(t *testing.T) {
	tests := map[string]string{
		"voice.OPUS":       "opus",
		"a.b.mp3":          "mp3",
		"noextension":      "noextension",
		"trailing.":        "",
		"nota de voz.m4a ": "m4a",
	}
	for in, want := range tests {
		if got := transcriber.ExtFromFilename(in); got != want {
			t.Errorf("ExtFromFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
