package media

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/kbukum/transcriptor/errors"
	"github.com/kbukum/transcriptor/logger"
)

// DefaultChunk is the fixed segment length.
const DefaultChunk = 30 * time.Second

// Segment is one window of the source audio written to its own file.
type Segment struct {
	Index  int
	Path   string
	Offset time.Duration
	Length time.Duration
}

// Segmenter cuts audio into consecutive fixed-length windows.
type Segmenter struct {
	slicer      Slicer
	chunk       time.Duration
	maxSegments int
	log         *logger.Logger
}

// NewSegmenter creates a Segmenter. chunk <= 0 selects DefaultChunk;
// maxSegments <= 0 leaves the window count unbounded.
func NewSegmenter(slicer Slicer, chunk time.Duration, maxSegments int, log *logger.Logger) *Segmenter {
	if chunk <= 0 {
		chunk = DefaultChunk
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Segmenter{
		slicer:      slicer,
		chunk:       chunk,
		maxSegments: maxSegments,
		log:         log.WithComponent("media.segmenter"),
	}
}

// Chunk returns the window length.
func (s *Segmenter) Chunk() time.Duration { return s.chunk }

// WindowCount returns ceil(total/chunk).
func WindowCount(total, chunk time.Duration) int {
	if total <= 0 || chunk <= 0 {
		return 0
	}
	return int((total + chunk - 1) / chunk)
}

// Segment writes the windows of src into ws as chunk_NNNN.wav, in order.
//
// With a known total duration exactly WindowCount(total) windows are cut and
// the last one is shortened to the remaining audio. With total <= 0 windows
// are cut until one comes back empty; the cap is exceeded only when the window
// after the last allowed one still holds audio.
//
// A failure on the first window returns no segments and no error, leaving
// the caller to fall back to the whole file. A later failure is an error
// when the duration is known and ends the loop otherwise.
func (s *Segmenter) Segment(ctx context.Context, ws *Workspace, src string, total time.Duration) ([]Segment, error) {
	bounded := total > 0
	limit := s.maxSegments
	if bounded {
		n := WindowCount(total, s.chunk)
		if s.maxSegments > 0 && n > s.maxSegments {
			return nil, s.tooLong()
		}
		limit = n
	} else if s.maxSegments > 0 {
		limit = s.maxSegments + 1
	}

	segments := make([]Segment, 0, max(limit, 0))
	for i := 0; limit <= 0 || i < limit; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offset := time.Duration(i) * s.chunk
		length := s.chunk
		if bounded && offset+length > total {
			length = total - offset
		}
		dst := ws.Path(fmt.Sprintf("chunk_%04d.wav", i))

		ok, err := s.slicer.Slice(ctx, src, dst, offset, length)
		if err != nil {
			ws.Remove(dst)
			if i == 0 {
				s.log.Warn("first slice failed, falling back to whole file", logger.ErrorFields("slice", err))
				return nil, nil
			}
			if bounded {
				if _, ok := apperrors.AsAppError(err); !ok {
					err = apperrors.MediaDecode(err.Error(), err)
				}
				return nil, err
			}
			s.log.Warn("slice failed, ending segmentation", logger.MergeWithError(
				logger.Fields(logger.FieldSegment, i), err))
			break
		}
		if !ok {
			ws.Remove(dst)
			break
		}
		segments = append(segments, Segment{Index: i, Path: dst, Offset: offset, Length: length})
	}

	if !bounded && s.maxSegments > 0 && len(segments) > s.maxSegments {
		ws.Remove(segments[s.maxSegments].Path)
		return nil, s.tooLong()
	}

	s.log.Debug("audio segmented", logger.Fields("segments", len(segments), "bounded", bounded))
	return segments, nil
}

func (s *Segmenter) tooLong() error {
	limit := time.Duration(s.maxSegments) * s.chunk
	return apperrors.InvalidInput("file", fmt.Sprintf("audio exceeds the maximum length of %s", limit))
}
