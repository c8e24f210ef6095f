package frame

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func uniform(t *testing.T, index int, v float64, rows, cols int) *Frame {
	t.Helper()
	mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, 0), rows, cols, gocv.MatTypeCV8UC3)
	f, err := NewFrame(index, &mat)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestNewFrameRejectsEmptyMat(t *testing.T) {
	mat := gocv.NewMat()
	defer mat.Close()

	_, err := NewFrame(0, &mat)
	require.ErrorIs(t, err, ErrEmptyFrame)

	_, err = NewFrame(0, nil)
	require.ErrorIs(t, err, ErrEmptyFrame)
}

func TestFrameGeometry(t *testing.T) {
	f := uniform(t, 7, 10, 40, 60)

	require.Equal(t, 7, f.Index())
	require.Equal(t, 60, f.Width())
	require.Equal(t, 40, f.Height())
	require.Equal(t, 3, f.Channels())
}

func TestFrameGrayKeepsIndex(t *testing.T) {
	f := uniform(t, 3, 100, 8, 8)

	gray, err := f.Gray()
	require.NoError(t, err)
	defer gray.Close()

	require.Equal(t, 3, gray.Index())
	require.Equal(t, 1, gray.Channels())
	require.InDelta(t, 100.0, gray.Mat().Mean().Val1, 1)

	again, err := gray.Gray()
	require.NoError(t, err)
	defer again.Close()
	require.True(t, Equal(gray, again))
}

func TestEqual(t *testing.T) {
	a := uniform(t, 0, 10, 16, 16)
	b := uniform(t, 1, 10, 16, 16)
	c := uniform(t, 2, 20, 16, 16)
	d := uniform(t, 3, 10, 8, 16)

	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))
	require.False(t, Equal(a, d))
	require.True(t, Equal(c, c))
}
