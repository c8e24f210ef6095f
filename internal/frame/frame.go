package frame

import (
	"errors"

	"gocv.io/x/gocv"
)

var ErrEmptyFrame = errors.New("frame is empty")

// Frame is a decoded picture and its zero-based index in the stream.
// The Frame owns its Mat; callers release it with Close.
type Frame struct {
	index int
	mat   *gocv.Mat
}

func NewFrame(index int, mat *gocv.Mat) (*Frame, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmptyFrame
	}

	return &Frame{index: index, mat: mat}, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) Index() int {
	return f.index
}

func (f *Frame) Gray() (*Frame, error) {
	gray := gocv.NewMat()
	if f.Channels() == 1 {
		f.mat.CopyTo(&gray)
	} else {
		gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRToGray)
	}

	return NewFrame(f.index, &gray)
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Channels() int {
	return f.mat.Channels()
}

func (f *Frame) Close() {
	f.mat.Close()
}

// Equal reports whether a and b have the same geometry, type and pixel values.
// Indices are not compared.
func Equal(a, b *Frame) bool {
	if a.Width() != b.Width() || a.Height() != b.Height() || a.mat.Type() != b.mat.Type() {
		return false
	}

	diff := gocv.NewMat()
	defer diff.Close()

	gocv.AbsDiff(*a.mat, *b.mat, &diff)
	s := diff.Sum()

	return s.Val1 == 0 && s.Val2 == 0 && s.Val3 == 0 && s.Val4 == 0
}
