package motion

import (
	"errors"

	"motionaura/internal/flow"
	"motionaura/internal/frame"
)

// Motion is the flow observed between two consecutively forwarded frames.
type Motion struct {
	frame         *frame.Frame
	polar         *flow.Polar
	direction     Direction
	meanMagnitude float64
}

func NewMotion(f *frame.Frame, polar *flow.Polar, direction Direction) (*Motion, error) {
	if f == nil || polar == nil {
		return nil, errors.New("motion needs a frame and a flow field")
	}

	return &Motion{
		frame:         f,
		polar:         polar,
		direction:     direction,
		meanMagnitude: polar.MeanMagnitude(),
	}, nil
}

func (m *Motion) Frame() *frame.Frame {
	return m.frame
}

func (m *Motion) Polar() *flow.Polar {
	return m.polar
}

func (m *Motion) Direction() Direction {
	return m.direction
}

func (m *Motion) FrameIndex() int {
	return m.frame.FrameIndex()
}

func (m *Motion) MeanMagnitude() float64 {
	return m.meanMagnitude
}
