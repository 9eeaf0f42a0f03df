package video

import (
	"motionaura/internal/frame"

	"gocv.io/x/gocv"
)

// Stream is an open decode handle. Close is safe to call more than once.
type Stream struct {
	Video *gocv.VideoCapture
	path  string
}

func (s *Stream) Path() string {
	return s.path
}

// Read decodes the next frame and tags it with frameIndex. It returns nil
// once the stream yields no further frame.
func (s *Stream) Read(frameIndex int) *frame.Frame {
	mat := gocv.NewMat()
	if ok := s.Video.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		return nil
	}

	f, err := frame.NewFrame(frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil
	}
	return f
}

func (s *Stream) Close() {
	if s.Video == nil {
		return
	}
	s.Video.Close()
	s.Video = nil
}

func (s *Stream) Fps() float64 {
	return s.Video.Get(gocv.VideoCaptureFPS)
}

func (s *Stream) FrameCount() int {
	n := int(s.Video.Get(gocv.VideoCaptureFrameCount))
	if n < 0 {
		return 0
	}
	return n
}

func (s *Stream) Width() int {
	return int(s.Video.Get(gocv.VideoCaptureFrameWidth))
}

func (s *Stream) Height() int {
	return int(s.Video.Get(gocv.VideoCaptureFrameHeight))
}

func (s *Stream) TimeAtFrame(f *frame.Frame) float64 {
	return float64(f.FrameIndex()) / s.Fps()
}
