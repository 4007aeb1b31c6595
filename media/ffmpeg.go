package media

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/kbukum/transcriptor/errors"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/process"
)

// Normalizer converts arbitrary encoded audio into the canonical WAV form.
type Normalizer interface {
	Normalize(ctx context.Context, data []byte) ([]byte, error)
}

// Slicer extracts [offset, offset+length) of src into dst as WAV.
// ok is false when the produced file holds no audio.
type Slicer interface {
	Slice(ctx context.Context, src, dst string, offset, length time.Duration) (ok bool, err error)
}

// Prober reports the playing time of an audio file.
type Prober interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// Option configures an FFmpeg.
type Option func(*FFmpeg)

// WithRunner replaces the subprocess runner.
func WithRunner(run process.RunFunc) Option {
	return func(f *FFmpeg) { f.run = run }
}

// FFmpeg implements Normalizer, Slicer and Prober with the ffmpeg and
// ffprobe executables.
type FFmpeg struct {
	cfg Config
	run process.RunFunc
	log *logger.Logger
}

var (
	_ Normalizer = (*FFmpeg)(nil)
	_ Slicer     = (*FFmpeg)(nil)
	_ Prober     = (*FFmpeg)(nil)
)

// NewFFmpeg creates an FFmpeg with the given configuration.
func NewFFmpeg(cfg Config, log *logger.Logger, opts ...Option) *FFmpeg {
	cfg.ApplyDefaults()
	if log == nil {
		log = logger.Nop()
	}
	f := &FFmpeg{
		cfg: cfg,
		run: process.Run,
		log: log.WithComponent("media.ffmpeg"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Normalize pipes data through ffmpeg, producing raw mono 16-bit PCM at the
// configured rate, and wraps the samples in a WAV container.
func (f *FFmpeg) Normalize(ctx context.Context, data []byte) ([]byte, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vn",
		"-ac", strconv.Itoa(Channels),
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-acodec", "pcm_s16le",
		"-f", "s16le",
		"pipe:1",
	}
	res, err := f.exec(ctx, f.cfg.FFmpegPath, args, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	wavData, err := EncodeWAV(res.Stdout, f.cfg.SampleRate)
	if err != nil {
		return nil, apperrors.MediaDecode(err.Error(), err)
	}
	f.log.Debug("audio normalized", logger.Fields(
		"input_bytes", len(data),
		"pcm_bytes", len(res.Stdout),
		logger.FieldDuration, res.Duration.Milliseconds(),
	))
	return wavData, nil
}

// Slice cuts one window out of src. A window starting past the end of the
// stream yields a WAV with an empty data chunk, reported as ok=false.
func (f *FFmpeg) Slice(ctx context.Context, src, dst string, offset, length time.Duration) (bool, error) {
	args := []string{
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-ss", seconds(offset),
		"-t", seconds(length),
		"-i", src,
		"-vn",
		"-ac", strconv.Itoa(Channels),
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-acodec", "pcm_s16le",
		"-f", "wav",
		dst,
	}
	if _, err := f.exec(ctx, f.cfg.FFmpegPath, args, nil); err != nil {
		return false, err
	}
	return hasAudio(dst), nil
}

// Probe asks ffprobe for the container duration of path.
func (f *FFmpeg) Probe(ctx context.Context, path string) (time.Duration, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	res, err := f.exec(ctx, f.cfg.FFprobePath, args, nil)
	if err != nil {
		return 0, err
	}
	out := strings.TrimSpace(string(res.Stdout))
	secs, perr := strconv.ParseFloat(out, 64)
	if perr != nil || secs < 0 {
		return 0, apperrors.MediaDecode(fmt.Sprintf("unreadable duration %q", out), perr)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func (f *FFmpeg) exec(ctx context.Context, binary string, args []string, stdin *bytes.Reader) (*process.Result, error) {
	cmd := process.Command{Binary: binary, Args: args}
	if stdin != nil {
		cmd.Stdin = stdin
	}
	res, err := f.run(ctx, cmd)
	if err == nil {
		return res, nil
	}
	if res == nil {
		f.log.Error("transcoder could not start", logger.ErrorFields(binary, err))
		return nil, apperrors.ServiceUnavailable(binary).WithCause(err)
	}
	f.log.Warn("transcoder failed", logger.MergeWithError(logger.Fields(
		"binary", binary,
		"exit_code", res.ExitCode,
	), err))
	return nil, apperrors.MediaDecode(res.Diagnostic(), err)
}

// seconds formats d for ffmpeg, rounded up to the microsecond so a tail
// shorter than a millisecond still yields a non-zero window.
func seconds(d time.Duration) string {
	if rem := d % time.Microsecond; rem > 0 {
		d += time.Microsecond - rem
	}
	return strconv.FormatFloat(d.Seconds(), 'f', 6, 64)
}
