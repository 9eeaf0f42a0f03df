package frame

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var ErrFrameTooSmall = errors.New("frame is too small to downscale")

// Frame is a decoded raster tagged with its position in the source stream.
type Frame struct {
	frameIndex int
	mat        *gocv.Mat
}

func NewFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	if mat.Empty() {
		return nil, errors.New("frame is empty")
	}

	return &Frame{frameIndex: frameIndex, mat: mat}, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

func (f *Frame) Gray() (*Frame, error) {
	gray := gocv.NewMat()
	gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRToGray)

	return f.wrap(&gray)
}

// Resize returns a copy scaled to size with linear interpolation.
func (f *Frame) Resize(size image.Point) (*Frame, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("resize to %dx%d: %w", size.X, size.Y, ErrFrameTooSmall)
	}

	resized := gocv.NewMat()
	gocv.Resize(*f.mat, &resized, size, 0, 0, gocv.InterpolationLinear)

	return f.wrap(&resized)
}

func (f *Frame) wrap(mat *gocv.Mat) (*Frame, error) {
	nf, err := NewFrame(f.frameIndex, mat)
	if err != nil {
		mat.Close()
		return nil, err
	}
	return nf, nil
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Size() image.Point {
	return image.Pt(f.Width(), f.Height())
}

func (f *Frame) Channels() int {
	return f.mat.Channels()
}

// ScaledSize truncates width and height scaled by factor to whole pixels.
func ScaledSize(width, height int, factor float64) image.Point {
	return image.Pt(int(float64(width)*factor), int(float64(height)*factor))
}

func (f *Frame) Close() {
	if f == nil || f.mat == nil {
		return
	}
	f.mat.Close()
}
