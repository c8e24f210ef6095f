package frame

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"
)

var (
	ErrShapeMismatch = errors.New("frame geometry differs from accumulator")
	ErrNoFrames      = errors.New("accumulator has no frames")
	ErrNoSquares     = errors.New("accumulator does not track squares")
)

// Accumulator keeps the element-wise sum of every frame added to it in a
// CV_64F matrix with the channel count of the frames. 8-bit channels
// therefore never overflow for any realistic frame count.
//
// When created with squares it also keeps the element-wise sum of squares,
// so mean and standard deviation come out of a single pass.
type Accumulator struct {
	count   int
	sum     gocv.Mat
	squares *gocv.Mat
	track   bool
}

func NewAccumulator(withSquares bool) *Accumulator {
	return &Accumulator{
		sum:   gocv.NewMat(),
		track: withSquares,
	}
}

// Add sums f into the accumulator. The first frame fixes rows, cols and
// channels; the matrices are allocated zeroed at that point.
func (a *Accumulator) Add(f *Frame) error {
	if a.sum.Empty() {
		mt, err := wideType(f.Channels())
		if err != nil {
			return err
		}
		a.sum.Close()
		a.sum = gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), f.Height(), f.Width(), mt)
		if a.track {
			squares := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), f.Height(), f.Width(), mt)
			a.squares = &squares
		}
	} else if f.Height() != a.sum.Rows() || f.Width() != a.sum.Cols() || f.Channels() != a.sum.Channels() {
		return fmt.Errorf("%w: frame %d is %dx%dx%d, want %dx%dx%d", ErrShapeMismatch,
			f.Index(), f.Width(), f.Height(), f.Channels(),
			a.sum.Cols(), a.sum.Rows(), a.sum.Channels())
	}

	gocv.Accumulate(*f.mat, &a.sum)
	if a.squares != nil {
		gocv.AccumulateSquare(*f.mat, a.squares)
	}
	a.count++

	return nil
}

func (a *Accumulator) Count() int {
	return a.count
}

// Sum returns the accumulated matrix. It stays owned by the accumulator and
// is empty until the first Add.
func (a *Accumulator) Sum() *gocv.Mat {
	return &a.sum
}

// Mean returns sum / count. The caller owns the result.
func (a *Accumulator) Mean() (gocv.Mat, error) {
	if a.count == 0 {
		return gocv.NewMat(), ErrNoFrames
	}

	mean := a.sum.Clone()
	mean.DivideFloat(float32(a.count))

	return mean, nil
}

// Std returns the population standard deviation sqrt(E[x²] - E[x]²).
// Rounding can push the variance slightly below zero; those cells are
// clamped to zero. The caller owns the result.
func (a *Accumulator) Std() (gocv.Mat, error) {
	if !a.track {
		return gocv.NewMat(), ErrNoSquares
	}

	mean, err := a.Mean()
	if err != nil {
		return mean, err
	}
	defer mean.Close()

	meanSq := gocv.NewMat()
	defer meanSq.Close()
	gocv.Multiply(mean, mean, &meanSq)

	variance := a.squares.Clone()
	defer variance.Close()
	variance.DivideFloat(float32(a.count))
	gocv.Subtract(variance, meanSq, &variance)
	gocv.Threshold(variance, &variance, 0, 0, gocv.ThresholdToZero)

	std := gocv.NewMat()
	gocv.Pow(variance, 0.5, &std)

	return std, nil
}

func (a *Accumulator) Close() {
	a.sum.Close()
	if a.squares != nil {
		a.squares.Close()
		a.squares = nil
	}
}

func wideType(channels int) (gocv.MatType, error) {
	switch channels {
	case 1:
		return gocv.MatTypeCV64FC1, nil
	case 2:
		return gocv.MatTypeCV64FC2, nil
	case 3:
		return gocv.MatTypeCV64FC3, nil
	case 4:
		return gocv.MatTypeCV64FC4, nil
	default:
		return 0, fmt.Errorf("unsupported channel count %d", channels)
	}
}
