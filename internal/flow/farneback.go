package flow

import (
	"errors"
	"fmt"

	"motionaura/internal/frame"

	"gocv.io/x/gocv"
)

var (
	ErrSizeMismatch = errors.New("frames differ in size")
	ErrNotGray      = errors.New("frame is not single-channel")
)

// Params configures gocv.CalcOpticalFlowFarneback.
type Params struct {
	PyrScale   float64
	Levels     int
	WinSize    int
	Iterations int
	PolyN      int
	PolySigma  float64
	Flags      int
}

func DefaultParams() Params {
	return Params{
		PyrScale:   0.5,
		Levels:     3,
		WinSize:    10,
		Iterations: 2,
		PolyN:      3,
		PolySigma:  1.1,
		Flags:      0,
	}
}

func (p Params) Validate() error {
	switch {
	case p.PyrScale <= 0 || p.PyrScale >= 1:
		return fmt.Errorf("pyramid scale %.2f out of (0, 1)", p.PyrScale)
	case p.Levels < 1:
		return fmt.Errorf("pyramid levels must be positive, got %d", p.Levels)
	case p.WinSize < 1:
		return fmt.Errorf("window size must be positive, got %d", p.WinSize)
	case p.Iterations < 1:
		return fmt.Errorf("iterations must be positive, got %d", p.Iterations)
	case p.PolyN < 1:
		return fmt.Errorf("polynomial neighborhood must be positive, got %d", p.PolyN)
	case p.PolySigma <= 0:
		return fmt.Errorf("polynomial sigma must be positive, got %.2f", p.PolySigma)
	}
	return nil
}

// Estimator computes flow fields. It keeps no state between calls.
type Estimator struct {
	params Params
}

func NewEstimator(params Params) *Estimator {
	return &Estimator{params: params}
}

func (e *Estimator) Params() Params {
	return e.params
}

// Compute returns the displacement field that maps previous onto current.
func (e *Estimator) Compute(previous, current *frame.Frame) (*Field, error) {
	if previous.Size() != current.Size() {
		return nil, fmt.Errorf("%v vs %v: %w", previous.Size(), current.Size(), ErrSizeMismatch)
	}
	if previous.Channels() != 1 || current.Channels() != 1 {
		return nil, ErrNotGray
	}

	mat := gocv.NewMat()
	gocv.CalcOpticalFlowFarneback(*previous.Mat(), *current.Mat(), &mat,
		e.params.PyrScale,
		e.params.Levels,
		e.params.WinSize,
		e.params.Iterations,
		e.params.PolyN,
		e.params.PolySigma,
		e.params.Flags,
	)

	return NewField(mat)
}
