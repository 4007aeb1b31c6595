package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/transcriptor/errors"
)

type engineSection struct {
	Backend       string `mapstructure:"backend" validate:"oneof=whisper openai"`
	MaxConcurrent int    `mapstructure:"max_concurrent" validate:"min=1"`
}

type sampleConfig struct {
	Language     string        `mapstructure:"language" validate:"required"`
	ChunkSeconds int           `mapstructure:"chunk_seconds" validate:"gte=1,lte=600"`
	Engine       engineSection `mapstructure:"engine"`
}

func TestStructValidateValid(t *testing.T) {
	cfg := sampleConfig{
		Language:     "es",
		ChunkSeconds: 30,
		Engine:       engineSection{Backend: "whisper", MaxConcurrent: 1},
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	cfg := sampleConfig{
		ChunkSeconds: 0,
		Engine:       engineSection{Backend: "vosk", MaxConcurrent: 0},
	}
	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}

	appErr, ok := errors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	for _, want := range []string{
		"language: is required",
		"chunk_seconds: must be at least 1",
		"engine.backend: must be one of: whisper openai",
		"engine.max_concurrent: must be at least 1",
	} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("expected message to contain %q, got %q", want, appErr.Message)
		}
	}

	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 4 {
		t.Fatalf("expected 4 field errors, got %v", appErr.Details["fields"])
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"ChunkSeconds": "chunk_seconds",
		"Language":     "language",
		"url":          "url",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
