package video

import (
	"testing"

	"gocv.io/x/gocv"
)

// fakeCapture plays back in-memory frames through the capture interface.
type fakeCapture struct {
	frames   []gocv.Mat
	fps      float64
	reported int
	pos      int
	broken   map[int]bool
	closed   bool

	// skipOnBroken makes a broken read consume its frame, as a grab that
	// succeeds before a failing retrieve does.
	skipOnBroken bool
}

func newFakeCapture(t *testing.T, fps float64, width, height int, values ...float64) *fakeCapture {
	t.Helper()

	fc := &fakeCapture{fps: fps, reported: len(values), broken: map[int]bool{}}
	for _, v := range values {
		fc.frames = append(fc.frames, gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), height, width, gocv.MatTypeCV8UC3))
	}
	t.Cleanup(func() {
		for _, m := range fc.frames {
			m.Close()
		}
	})

	return fc
}

func (fc *fakeCapture) Read(m *gocv.Mat) bool {
	if fc.pos >= len(fc.frames) {
		return false
	}
	if fc.broken[fc.pos] {
		if fc.skipOnBroken {
			fc.pos++
		}
		return false
	}
	fc.frames[fc.pos].CopyTo(m)
	fc.pos++
	return true
}

func (fc *fakeCapture) Get(prop gocv.VideoCaptureProperties) float64 {
	switch prop {
	case gocv.VideoCaptureFPS:
		return fc.fps
	case gocv.VideoCaptureFrameCount:
		return float64(fc.reported)
	case gocv.VideoCaptureFrameWidth:
		if len(fc.frames) == 0 {
			return 0
		}
		return float64(fc.frames[0].Cols())
	case gocv.VideoCaptureFrameHeight:
		if len(fc.frames) == 0 {
			return 0
		}
		return float64(fc.frames[0].Rows())
	case gocv.VideoCapturePosFrames:
		return float64(fc.pos)
	case gocv.VideoCapturePosMsec:
		if fc.fps <= 0 {
			return 0
		}
		return float64(fc.pos) * 1000 / fc.fps
	}
	return 0
}

func (fc *fakeCapture) Set(prop gocv.VideoCaptureProperties, param float64) {
	if prop == gocv.VideoCapturePosFrames {
		fc.pos = int(param)
	}
}

func (fc *fakeCapture) IsOpened() bool {
	return !fc.closed
}

func (fc *fakeCapture) Close() error {
	fc.closed = true
	return nil
}

func openFake(t *testing.T, fc *fakeCapture) *Source {
	t.Helper()

	s, err := Open("/videos/clips/test_vid.mp4", withBackend(func(string) (capture, error) {
		return fc, nil
	}))
	if err != nil {
		t.Fatalf("open fake: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

// distinctValues returns n uniform frame values with no two neighbours equal.
func distinctValues(n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64((i * 37) % 256)
	}
	return values
}

func constantValues(n int, v float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = v
	}
	return values
}
