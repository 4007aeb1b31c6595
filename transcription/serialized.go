package transcription

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Serialized bounds concurrent Transcribe calls on p to n (minimum 1).
// Callers waiting for a slot give up when their context ends.
func Serialized(p Provider, n int) Provider {
	if n < 1 {
		n = 1
	}
	return &serialized{Provider: p, sem: semaphore.NewWeighted(int64(n))}
}

type serialized struct {
	Provider
	sem *semaphore.Weighted
}

func (s *serialized) Transcribe(ctx context.Context, req Request) (*Response, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer s.sem.Release(1)
	return s.Provider.Transcribe(ctx, req)
}
