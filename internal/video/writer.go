package video

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var ErrWriterClosed = errors.New("video writer is closed")

// Writer appends frames to an encoded output file.
type Writer struct {
	video   *gocv.VideoWriter
	path    string
	size    image.Point
	written int
}

// NewWriter opens path for writing color frames of the given size.
func NewWriter(path, codec string, fps float64, size image.Point) (*Writer, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", size.X, size.Y)
	}

	vw, err := gocv.VideoWriterFile(path, codec, fps, size.X, size.Y, true)
	if err != nil {
		return nil, fmt.Errorf("unable to open video writer %s: %w", path, err)
	}
	if !vw.IsOpened() {
		vw.Close()
		return nil, fmt.Errorf("unable to open video writer %s with codec %s", path, codec)
	}

	return &Writer{video: vw, path: path, size: size}, nil
}

func (w *Writer) Write(mat gocv.Mat) error {
	if w.video == nil {
		return ErrWriterClosed
	}
	if mat.Cols() != w.size.X || mat.Rows() != w.size.Y {
		return fmt.Errorf("frame %dx%d does not match output %dx%d", mat.Cols(), mat.Rows(), w.size.X, w.size.Y)
	}
	if err := w.video.Write(mat); err != nil {
		return fmt.Errorf("write frame %d: %w", w.written, err)
	}
	w.written++

	return nil
}

func (w *Writer) Path() string {
	return w.path
}

func (w *Writer) Written() int {
	return w.written
}

// Close flushes and releases the encoder. Later calls are no-ops.
func (w *Writer) Close() error {
	if w == nil || w.video == nil {
		return nil
	}
	err := w.video.Close()
	w.video = nil

	return err
}
