package transcription

import "context"

// Provider is the interface that transcription backends must implement.
// Implementations return engine errors unchanged and never retry.
type Provider interface {
	// Name returns the backend name.
	Name() string
	// IsAvailable checks if the backend is ready to handle requests.
	IsAvailable(ctx context.Context) bool
	// Transcribe recognizes the speech in one audio file.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}
