package frame

import (
	"errors"
	"fmt"
	"image"
	"io"
)

var ErrEmptyVideo = errors.New("video stream has no frames")

// Reader yields decoded frames in order, nil once the stream is exhausted.
type Reader interface {
	Read(frameIndex int) *Frame
}

// Sample is one forwarded frame together with the grayscale pair used for
// flow estimation.
type Sample struct {
	Color    *Frame
	Gray     *Frame
	Previous *Frame
}

func (s *Sample) FrameIndex() int {
	return s.Color.FrameIndex()
}

// Close releases the color and previous frames. Gray belongs to the sampler
// and stays valid until the next call to Next.
func (s *Sample) Close() {
	s.Color.Close()
	s.Previous.Close()
}

// Sampler downscales frames and forwards every skip-th of them.
type Sampler struct {
	reader  Reader
	scale   float64
	skip    int
	size    image.Point
	buffer  *FrameBuffer
	decoded int
}

func NewSampler(reader Reader, scale float64, skip int) *Sampler {
	if skip < 1 {
		skip = 1
	}

	return &Sampler{
		reader: reader,
		scale:  scale,
		skip:   skip,
		buffer: NewFrameBuffer(),
	}
}

// Prime reads the first frame and makes it the reference for the first flow
// computation.
func (s *Sampler) Prime() error {
	first := s.reader.Read(0)
	if first == nil {
		return ErrEmptyVideo
	}
	defer first.Close()
	s.decoded = 1

	s.size = ScaledSize(first.Width(), first.Height(), s.scale)

	color, gray, err := s.prepare(first)
	if err != nil {
		return err
	}
	color.Close()
	s.buffer.Push(gray).Close()

	return nil
}

// Next returns the next forwarded sample, or io.EOF when the stream ends.
func (s *Sampler) Next() (*Sample, error) {
	if s.buffer.Empty() {
		return nil, errors.New("sampler is not primed")
	}

	for {
		current := s.reader.Read(s.decoded)
		if current == nil {
			return nil, io.EOF
		}
		s.decoded++

		if (s.decoded-1)%s.skip != 0 {
			current.Close()
			continue
		}

		color, gray, err := s.prepare(current)
		current.Close()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", s.decoded-1, err)
		}

		return &Sample{
			Color:    color,
			Gray:     gray,
			Previous: s.buffer.Push(gray),
		}, nil
	}
}

func (s *Sampler) prepare(f *Frame) (*Frame, *Frame, error) {
	color, err := f.Resize(s.size)
	if err != nil {
		return nil, nil, err
	}

	gray, err := color.Gray()
	if err != nil {
		color.Close()
		return nil, nil, err
	}

	return color, gray, nil
}

func (s *Sampler) Size() image.Point {
	return s.size
}

func (s *Sampler) Decoded() int {
	return s.decoded
}

func (s *Sampler) Close() {
	s.buffer.Reset()
}
