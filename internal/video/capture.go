package video

import (
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

// capture is the subset of *gocv.VideoCapture a Source drives.
type capture interface {
	Read(m *gocv.Mat) bool
	Get(prop gocv.VideoCaptureProperties) float64
	Set(prop gocv.VideoCaptureProperties, param float64)
	IsOpened() bool
	Close() error
}

var _ capture = (*gocv.VideoCapture)(nil)

type opener func(path string) (capture, error)

func openCapture(path string) (capture, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}

	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("no backend could open %s", path)
	}

	return vc, nil
}
