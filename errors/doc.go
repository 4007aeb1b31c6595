// Package errors defines the application error type used across the
// transcription service: a machine-readable code, a client-safe message,
// the HTTP status the boundary should answer with, and the wrapped cause.
package errors
