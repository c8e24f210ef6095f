// Package video gives an ordinal-indexed view over the frames of a video file
// decoded by OpenCV.
//
// A Source is not safe for concurrent use. Consumers that need frames in
// parallel open one Source each; every Source owns its own decode session
// and cursor.
package video

import (
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"strings"

	uuid "github.com/gofrs/uuid/v5"
	"gocv.io/x/gocv"

	"github.com/kmmndr/movement_detector/internal/frame"
	"github.com/kmmndr/movement_detector/internal/logger"
)

// Some containers report one frame more than they can decode. Open probes
// at most this many trailing indices before giving up on the correction.
const maxTrailingProbe = 8

type Source struct {
	id   uuid.UUID
	path string
	name string
	log  logger.Logger

	capture capture
	pos     int

	width      int
	height     int
	frameRate  float64
	frameCount int
}

// Open opens the video at path and reads its metadata. On failure it returns
// an *OpenError and no Source; the decode session, if one was created, is
// already released.
func Open(path string, opts ...Option) (*Source, error) {
	o := options{
		log:  logger.NewNoop(),
		open: openCapture,
	}
	for _, opt := range opts {
		opt(&o)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	c, err := o.open(path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	s := &Source{
		id:      id,
		path:    path,
		name:    nameFromPath(path),
		capture: c,
	}
	s.log = o.log.WithComponent("video " + id.String()[:8])

	if err := s.probe(); err != nil {
		c.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	s.log.Info("Opened %s (%dx%d, %.2f fps, %d frames)", s.name, s.width, s.height, s.frameRate, s.frameCount)

	return s, nil
}

// nameFromPath returns the text after the last separator, without the
// separator itself.
func nameFromPath(path string) string {
	seps := "/"
	if filepath.Separator != '/' {
		seps += string(filepath.Separator)
	}
	return path[strings.LastIndexAny(path, seps)+1:]
}

func (s *Source) probe() error {
	s.width = int(s.capture.Get(gocv.VideoCaptureFrameWidth))
	s.height = int(s.capture.Get(gocv.VideoCaptureFrameHeight))
	s.frameRate = s.capture.Get(gocv.VideoCaptureFPS)

	reported := int(s.capture.Get(gocv.VideoCaptureFrameCount))
	if reported <= 0 {
		return errEmptyVideo
	}

	count := reported
	for count > 0 && reported-count < maxTrailingProbe && !s.decodable(count-1) {
		count--
	}
	if count == 0 {
		return errEmptyVideo
	}
	if count == reported-maxTrailingProbe {
		// No decodable frame near the end; keep the reported count.
		count = reported
	}
	if count != reported {
		s.log.Debug("Frame count corrected from %d to %d", reported, count)
	}
	s.frameCount = count

	s.capture.Set(gocv.VideoCapturePosFrames, 0)
	s.pos = 0

	return nil
}

func (s *Source) decodable(index int) bool {
	s.capture.Set(gocv.VideoCapturePosFrames, float64(index))

	mat := gocv.NewMat()
	defer mat.Close()

	return s.capture.Read(&mat) && !mat.Empty()
}

func (s *Source) closed() bool {
	return s.capture == nil
}

func (s *Source) ID() string {
	return s.id.String()
}

func (s *Source) Path() string {
	return s.path
}

func (s *Source) Name() string {
	return s.name
}

// FrameShape returns the frame width and height, in that order.
func (s *Source) FrameShape() (width, height int) {
	if s.closed() {
		return 0, 0
	}
	return s.width, s.height
}

func (s *Source) FrameRate() float64 {
	if s.closed() {
		return 0
	}
	return s.frameRate
}

// FrameCount is the number of decodable frames. It is the container's count,
// lowered when the trailing indices reported by the container fail to decode.
func (s *Source) FrameCount() int {
	if s.closed() {
		return 0
	}
	return s.frameCount
}

func (s *Source) Duration() (float64, error) {
	if s.closed() {
		return 0, ErrClosed
	}
	if !(s.frameRate > 0) {
		return 0, fmt.Errorf("%w: frame rate %v", ErrDegenerateMetadata, s.frameRate)
	}
	return float64(s.frameCount) / s.frameRate, nil
}

// CurrentFramePos returns the playback position reported by the decoder, in
// milliseconds.
//
// Unlike SetFramePos and Position, which count frames, this is a time-domain
// value. The two are kept separate; use Position for the frame cursor.
func (s *Source) CurrentFramePos() float64 {
	if s.closed() {
		return 0
	}
	return s.capture.Get(gocv.VideoCapturePosMsec)
}

// Position is the index of the frame the next FrameAndAdvance returns.
func (s *Source) Position() int {
	return s.pos
}

// SetFramePos moves the cursor to a zero-based frame index. Indices past the
// end are accepted; the next read then reports ErrEndOfStream.
func (s *Source) SetFramePos(index int) error {
	if s.closed() {
		return ErrClosed
	}
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	s.capture.Set(gocv.VideoCapturePosFrames, float64(index))
	s.pos = index

	return nil
}

// FrameAndAdvance reads the frame under the cursor and moves the cursor by
// one. It is the only operation that advances. It returns ErrEndOfStream
// once the cursor has reached FrameCount, even if the backend could still
// produce frames, and a *DecodeError when the backend fails before that
// point. The caller closes the returned frame.
func (s *Source) FrameAndAdvance() (*frame.Frame, error) {
	if s.closed() {
		return nil, ErrClosed
	}
	if s.pos >= s.frameCount {
		return nil, ErrEndOfStream
	}

	mat := gocv.NewMat()
	if ok := s.capture.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		s.log.Warn("Decode failed at frame %d", s.pos)
		// A grab may have succeeded before the retrieve failed.
		s.capture.Set(gocv.VideoCapturePosFrames, float64(s.pos))
		return nil, &DecodeError{Index: s.pos}
	}

	f, err := frame.NewFrame(s.pos, &mat)
	if err != nil {
		mat.Close()
		return nil, err
	}
	s.pos++

	return f, nil
}

// Frame is SetFramePos(index) followed by FrameAndAdvance, so the cursor
// ends at index+1.
func (s *Source) Frame(index int) (*frame.Frame, error) {
	if err := s.SetFramePos(index); err != nil {
		return nil, err
	}
	return s.FrameAndAdvance()
}

// TimeAtFrame returns the presentation time of f in seconds, derived from
// its index and the frame rate.
func (s *Source) TimeAtFrame(f *frame.Frame) (float64, error) {
	if s.closed() {
		return 0, ErrClosed
	}
	if f == nil {
		return 0, frame.ErrEmptyFrame
	}
	if !(s.frameRate > 0) {
		return 0, fmt.Errorf("%w: frame rate %v", ErrDegenerateMetadata, s.frameRate)
	}
	return float64(f.Index()) / s.frameRate, nil
}

// FramesSum rewinds to frame 0 and adds every frame up to end of stream,
// frame 0 included, into a 64-bit accumulator. The cursor is left at end
// of stream. The caller closes the accumulator.
func (s *Source) FramesSum() (*frame.Accumulator, error) {
	return s.accumulate(false)
}

// Stats is FramesSum with the sum of squares tracked as well, so the
// accumulator can also answer Mean and Std.
func (s *Source) Stats() (*frame.Accumulator, error) {
	return s.accumulate(true)
}

func (s *Source) accumulate(withSquares bool) (*frame.Accumulator, error) {
	if err := s.SetFramePos(0); err != nil {
		return nil, err
	}

	acc := frame.NewAccumulator(withSquares)
	s.log.Debug("Accumulating %d frames", s.frameCount)

	for {
		f, err := s.FrameAndAdvance()
		if errors.Is(err, ErrEndOfStream) {
			break
		}
		if err != nil {
			acc.Close()
			return nil, err
		}

		err = acc.Add(f)
		f.Close()
		if err != nil {
			acc.Close()
			return nil, err
		}
	}

	if acc.Count() == 0 {
		acc.Close()
		return nil, frame.ErrNoFrames
	}
	s.log.Debug("Accumulated %d frames", acc.Count())

	return acc, nil
}

// Frames rewinds to frame 0 and yields every frame in stream order. A decode
// error is yielded once and ends the sequence; end of stream ends it
// silently. Yielded frames belong to the consumer.
func (s *Source) Frames() iter.Seq2[*frame.Frame, error] {
	return func(yield func(*frame.Frame, error) bool) {
		if err := s.SetFramePos(0); err != nil {
			yield(nil, err)
			return
		}

		for {
			f, err := s.FrameAndAdvance()
			if errors.Is(err, ErrEndOfStream) {
				return
			}
			if !yield(f, err) || err != nil {
				return
			}
		}
	}
}

// Range reads frames [start, end) with a single seek. end is clamped to
// FrameCount. On error the frames read so far are released.
func (s *Source) Range(start, end int) ([]*frame.Frame, error) {
	if s.closed() {
		return nil, ErrClosed
	}
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: range [%d, %d)", ErrInvalidIndex, start, end)
	}
	end = min(end, s.FrameCount())
	if start >= end {
		return nil, nil
	}

	if err := s.SetFramePos(start); err != nil {
		return nil, err
	}

	frames := make([]*frame.Frame, 0, end-start)
	for i := start; i < end; i++ {
		f, err := s.FrameAndAdvance()
		if errors.Is(err, ErrEndOfStream) {
			break
		}
		if err != nil {
			for _, f := range frames {
				f.Close()
			}
			return nil, err
		}
		frames = append(frames, f)
	}

	return frames, nil
}

// Close releases the decode session. Calling it again is a no-op.
func (s *Source) Close() error {
	if s.closed() {
		return nil
	}

	err := s.capture.Close()
	s.capture = nil
	s.log.Debug("Closed %s", s.name)

	return err
}
