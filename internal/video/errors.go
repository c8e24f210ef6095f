package video

import (
	"errors"
	"fmt"
	"io"
)

var (
	// ErrOpen is wrapped by every *OpenError.
	ErrOpen = errors.New("unable to open video")

	// ErrEndOfStream marks the terminal read state. It is io.EOF so that
	// callers reading several sources can test a single sentinel.
	ErrEndOfStream = io.EOF

	// ErrDecode is wrapped by every *DecodeError.
	ErrDecode = errors.New("unable to decode frame")

	// ErrDegenerateMetadata is returned when a time computation needs a
	// frame rate and the container reports zero, a negative value or NaN.
	ErrDegenerateMetadata = errors.New("degenerate video metadata")

	ErrInvalidIndex = errors.New("invalid frame index")
	ErrClosed       = errors.New("video source is closed")

	errEmptyVideo = errors.New("video has no frames")
)

// OpenError reports why a video could not be opened. No Source is returned
// alongside it.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("unable to open video file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() []error {
	return []error{ErrOpen, e.Err}
}

// DecodeError reports a frame the backend failed to produce although the
// cursor was inside the stream.
type DecodeError struct {
	Index int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode frame %d", e.Index)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}
