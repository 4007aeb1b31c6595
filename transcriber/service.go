package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/transcriptor/errors"
	"github.com/kbukum/transcriptor/logger"
	"github.com/kbukum/transcriptor/media"
	"github.com/kbukum/transcriptor/observability"
	"github.com/kbukum/transcriptor/transcription"
)

const segmentSeparator = "\n\n"

// Media is the transcoding toolset the service drives. media.FFmpeg
// implements it.
type Media interface {
	media.Normalizer
	media.Slicer
	media.Prober
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithMetrics records pipeline metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Service is the transcription orchestrator. It is safe for concurrent use;
// every call owns a separate workspace.
type Service struct {
	cfg       Config
	mediaCfg  media.Config
	media     Media
	segmenter *media.Segmenter
	engine    transcription.Provider
	metrics   *observability.Metrics
	log       *logger.Logger
}

// New creates a Service. engine must already be safe for the expected
// concurrency (see transcription.Serialized).
func New(cfg Config, mediaCfg media.Config, tools Media, engine transcription.Provider, opts ...Option) *Service {
	cfg.ApplyDefaults()
	mediaCfg.ApplyDefaults()
	s := &Service{
		cfg:      cfg,
		mediaCfg: mediaCfg,
		media:    tools,
		engine:   engine,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithComponent("transcriber")
	s.segmenter = media.NewSegmenter(tools, cfg.Chunk(), cfg.MaxSegments, s.log)
	return s
}

// Language returns the target language.
func (s *Service) Language() string { return s.cfg.Language }

// TranscribeFile reads path and transcribes it, taking the format from
// the file extension.
func (s *Service) TranscribeFile(ctx context.Context, path string) (string, error) {
	ext := ExtFromFilename(filepath.Base(path))
	if !SupportedFormat(ext) {
		return "", apperrors.UnsupportedFormat(ext, SupportedFormats)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", apperrors.IO("read audio file", err)
	}
	return s.TranscribeBytes(ctx, data, ext)
}

// TranscribeBytes returns the transcript of data, an audio file of format ext.
//
// Audio no longer than one chunk is transcribed in a single engine call.
// Longer audio is cut into chunk-length windows transcribed in temporal
// order; their trimmed texts are joined by a blank line. If segmentation
// yields no windows the whole file is transcribed instead.
func (s *Service) TranscribeBytes(ctx context.Context, data []byte, ext string) (text string, err error) {
	ext = NormalizeExt(ext)
	if !SupportedFormat(ext) {
		return "", apperrors.UnsupportedFormat(ext, SupportedFormats)
	}

	start := time.Now()
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribe, trace.WithAttributes(
		attribute.String(observability.AttrFormat, ext),
		attribute.Int(observability.AttrInputBytes, len(data)),
		attribute.String(observability.AttrBackend, s.engine.Name()),
		attribute.String(observability.AttrLanguage, s.cfg.Language),
	))
	log := s.log.WithContext(ctx)
	defer func() {
		observability.EndSpan(span, err)
		s.record(ctx, start, err)
	}()

	ws, err := media.NewWorkspace(s.mediaCfg.TempDir, s.mediaCfg.TempPrefix, log)
	if err != nil {
		return "", apperrors.IO("create workspace", err)
	}
	defer ws.Close()

	src, total, known, err := s.prepare(ctx, ws, data, ext)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.Int64(observability.AttrDurationMs, total.Milliseconds()))

	if known && total <= s.segmenter.Chunk() {
		log.Debug("transcribing in one call", logger.Fields("audio_ms", total.Milliseconds()))
		return s.transcribeWhole(ctx, src)
	}

	if !known {
		total = 0
	}
	segments, err := s.segment(ctx, ws, src, total)
	if err != nil {
		return "", err
	}
	if len(segments) == 0 {
		span.SetAttributes(attribute.Bool(observability.AttrFallback, true))
		log.Warn("segmentation produced no windows, transcribing whole file")
		return s.transcribeWhole(ctx, src)
	}
	span.SetAttributes(attribute.Int(observability.AttrSegments, len(segments)))

	return s.transcribeSegments(ctx, ws, segments)
}

// prepare stores the upload in ws in the form the engine consumes and
// reports its duration when it can be determined.
func (s *Service) prepare(ctx context.Context, ws *media.Workspace, data []byte, ext string) (string, time.Duration, bool, error) {
	if s.mediaCfg.Passthrough {
		src, err := ws.WriteFile("input."+ext, data)
		if err != nil {
			return "", 0, false, apperrors.IO("write upload", err)
		}
		if s.cfg.LegacySegmentation {
			return src, 0, false, nil
		}
		total, err := s.media.Probe(ctx, src)
		if err != nil {
			s.log.WithContext(ctx).Warn("duration probe failed, slicing until empty", logger.ErrorFields("probe", err))
			return src, 0, false, nil
		}
		return src, total, true, nil
	}

	nctx, span := observability.StartSpan(ctx, observability.SpanNormalize)
	wav, err := s.media.Normalize(nctx, data)
	observability.EndSpan(span, err)
	if err != nil {
		return "", 0, false, err
	}

	src, err := ws.WriteFile("input.wav", wav)
	if err != nil {
		return "", 0, false, apperrors.IO("write normalized audio", err)
	}
	if s.cfg.LegacySegmentation {
		return src, 0, false, nil
	}
	total, err := media.WAVDuration(wav)
	if err != nil {
		return "", 0, false, apperrors.MediaDecode(err.Error(), err)
	}
	return src, total, true, nil
}

func (s *Service) segment(ctx context.Context, ws *media.Workspace, src string, total time.Duration) ([]media.Segment, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanSegment)
	segments, err := s.segmenter.Segment(ctx, ws, src, total)
	span.SetAttributes(attribute.Int(observability.AttrSegments, len(segments)))
	observability.EndSpan(span, err)
	return segments, err
}

// transcribeSegments runs the engine over segments one at a time, in index
// order, removing each file once its text is extracted.
func (s *Service) transcribeSegments(ctx context.Context, ws *media.Workspace, segments []media.Segment) (string, error) {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		text, err := s.transcribeSegment(ctx, seg)
		ws.Remove(seg.Path)
		if err != nil {
			return "", err
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	s.metrics.RecordSegments(ctx, len(segments))
	return strings.Join(texts, segmentSeparator), nil
}

func (s *Service) transcribeSegment(ctx context.Context, seg media.Segment) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribeSegment, trace.WithAttributes(
		attribute.Int(observability.AttrSegmentIndex, seg.Index),
	))
	text, err := s.call(ctx, seg.Path)
	observability.EndSpan(span, err)
	if err != nil {
		s.log.WithContext(ctx).Error("segment transcription failed", logger.MergeWithError(
			logger.Fields(logger.FieldSegment, seg.Index, "offset", seg.Offset.String()), err))
		return "", err
	}
	return text, nil
}

func (s *Service) transcribeWhole(ctx context.Context, path string) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanTranscribeSegment)
	text, err := s.call(ctx, path)
	observability.EndSpan(span, err)
	return text, err
}

// call is the single point where the engine is invoked. Engine errors are
// wrapped, not retried.
func (s *Service) call(ctx context.Context, path string) (string, error) {
	resp, err := s.engine.Transcribe(ctx, transcription.Request{
		AudioPath: path,
		Language:  s.cfg.Language,
	})
	if err != nil {
		return "", apperrors.Transcription(s.engine.Name(), err)
	}
	if resp == nil {
		return "", apperrors.Transcription(s.engine.Name(), fmt.Errorf("engine returned no result"))
	}
	return strings.TrimSpace(resp.Text), nil
}

func (s *Service) record(ctx context.Context, start time.Time, err error) {
	elapsed := time.Since(start)
	if err == nil {
		s.metrics.RecordTranscription(ctx, observability.OutcomeOK, elapsed)
		s.log.WithContext(ctx).Info("transcription completed", logger.DurationFields("transcribe", elapsed))
		return
	}
	s.metrics.RecordTranscription(ctx, observability.OutcomeError, elapsed)
	code := string(apperrors.ErrCodeInternal)
	if appErr, ok := apperrors.AsAppError(err); ok {
		code = string(appErr.Code)
	}
	s.metrics.RecordError(ctx, code)
}
