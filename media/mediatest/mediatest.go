// Package mediatest provides in-process stand-ins for the ffmpeg adapter.
package mediatest

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kbukum/transcriptor/media"
)

// Rate is the sample rate fakes write at. Durations come from the WAV
// header, so a low rate keeps fixture files small.
const Rate = 1000

// PCM returns silent 16-bit mono samples lasting d at rate.
func PCM(d time.Duration, rate int) []byte {
	n := int(d * time.Duration(rate) / time.Second)
	return make([]byte, 2*n)
}

// WAV returns a WAV file lasting d at Rate.
func WAV(d time.Duration) []byte {
	data, err := media.EncodeWAV(PCM(d, Rate), Rate)
	if err != nil {
		panic(err)
	}
	return data
}

// Slicer behaves like ffmpeg cutting a source of fixed Duration: windows
// past the end come back empty.
type Slicer struct {
	Duration time.Duration
	// FailAt makes the call with this zero-based index fail. Negative disables.
	FailAt int

	mu    sync.Mutex
	calls []Call
}

// Call records one Slice invocation.
type Call struct {
	Src, Dst       string
	Offset, Length time.Duration
}

// NewSlicer returns a Slicer over a source lasting d.
func NewSlicer(d time.Duration) *Slicer {
	return &Slicer{Duration: d, FailAt: -1}
}

// Slice implements media.Slicer.
func (s *Slicer) Slice(_ context.Context, src, dst string, offset, length time.Duration) (bool, error) {
	s.mu.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, Call{Src: src, Dst: dst, Offset: offset, Length: length})
	s.mu.Unlock()

	if idx == s.FailAt {
		return false, fmt.Errorf("slice %d: simulated transcoder failure", idx)
	}
	remaining := s.Duration - offset
	if remaining < 0 {
		remaining = 0
	}
	if length > remaining {
		length = remaining
	}
	if err := os.WriteFile(dst, WAV(length), 0o600); err != nil {
		return false, err
	}
	return length > 0, nil
}

// Calls returns the recorded invocations in order.
func (s *Slicer) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// Normalizer returns WAV audio of a fixed Duration for any input, or Err.
type Normalizer struct {
	Duration time.Duration
	Err      error

	mu    sync.Mutex
	count int
}

// Normalize implements media.Normalizer.
func (n *Normalizer) Normalize(context.Context, []byte) ([]byte, error) {
	n.mu.Lock()
	n.count++
	n.mu.Unlock()
	if n.Err != nil {
		return nil, n.Err
	}
	return WAV(n.Duration), nil
}

// Count reports how many times Normalize ran.
func (n *Normalizer) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.count
}

// Prober returns a fixed duration, or Err.
type Prober struct {
	Duration time.Duration
	Err      error
}

// Probe implements media.Prober.
func (p Prober) Probe(context.Context, string) (time.Duration, error) {
	return p.Duration, p.Err
}

// Tools bundles the stand-ins into one value satisfying the normalizer,
// slicer, and prober interfaces together.
type Tools struct {
	*Normalizer
	*Slicer
	Prober
}

// NewTools returns Tools describing source audio lasting d.
func NewTools(d time.Duration) *Tools {
	return &Tools{
		Normalizer: &Normalizer{Duration: d},
		Slicer:     NewSlicer(d),
		Prober:     Prober{Duration: d},
	}
}
