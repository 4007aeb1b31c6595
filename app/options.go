package app

import (
	"time"

	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/transcriber"
	"github.com/kbukum/transcriptor/transcription"
)

// Option configures the App during creation.
type Option func(*appOptions)

type appOptions struct {
	logger          *logger.Logger
	engines         *transcription.Registry
	media           transcriber.Media
	gracefulTimeout *time.Duration
}

func resolveOptions(opts []Option) *appOptions {
	o := &appOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets a custom logger for the application.
// If not set, the logger is initialized from the config's logging section.
func WithLogger(l *logger.Logger) Option {
	return func(o *appOptions) {
		o.logger = l
	}
}

// WithEngines replaces the backend registry (DefaultEngines otherwise).
func WithEngines(r *transcription.Registry) Option {
	return func(o *appOptions) {
		o.engines = r
	}
}

// WithMedia replaces the ffmpeg adapter.
func WithMedia(m transcriber.Media) Option {
	return func(o *appOptions) {
		o.media = m
	}
}

// WithGracefulTimeout sets the maximum duration for graceful shutdown.
func WithGracefulTimeout(d time.Duration) Option {
	return func(o *appOptions) {
		o.gracefulTimeout = &d
	}
}
