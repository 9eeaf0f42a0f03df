package motion

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"motionaura/internal/flow"
	"motionaura/internal/frame"
)

var ErrTooShort = errors.New("video too short: no pair of sampled frames to compare")

// MotionDetector samples a stream, estimates flow between consecutively
// forwarded frames and classifies each field.
type MotionDetector struct {
	threshold float64
	scale     float64
	skip      int
	estimator *flow.Estimator

	size     image.Point
	decoded  int
	sequence []Direction
	counts   map[Direction]int
}

func NewMotionDetector(threshold, scale float64, skip int, params flow.Params) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		scale:     scale,
		skip:      skip,
		estimator: flow.NewEstimator(params),
		counts:    make(map[Direction]int),
	}
}

// Detect runs the sampling loop and calls onMotion once per forwarded frame.
// The Motion and everything it references are released when onMotion returns.
// Counters start over on every call.
func (md *MotionDetector) Detect(ctx context.Context, reader frame.Reader, onMotion func(*Motion) error) error {
	md.size = image.Point{}
	md.sequence = nil
	md.counts = make(map[Direction]int)

	sampler := frame.NewSampler(reader, md.scale, md.skip)
	defer sampler.Close()
	defer func() { md.decoded = sampler.Decoded() }()

	if err := sampler.Prime(); err != nil {
		return err
	}
	md.size = sampler.Size()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		sample, err := sampler.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		err = md.process(sample, onMotion)
		sample.Close()
		if err != nil {
			return err
		}
	}

	if len(md.sequence) == 0 {
		return ErrTooShort
	}
	return nil
}

func (md *MotionDetector) process(sample *frame.Sample, onMotion func(*Motion) error) error {
	field, err := md.estimator.Compute(sample.Previous, sample.Gray)
	if err != nil {
		return fmt.Errorf("optical flow at frame %d: %w", sample.FrameIndex(), err)
	}
	defer field.Close()

	polar, err := field.Polar()
	if err != nil {
		return fmt.Errorf("polar conversion at frame %d: %w", sample.FrameIndex(), err)
	}
	defer polar.Close()

	direction, err := Classify(polar, md.threshold)
	if err != nil {
		return fmt.Errorf("classify frame %d: %w", sample.FrameIndex(), err)
	}

	motion, err := NewMotion(sample.Color, polar, direction)
	if err != nil {
		return err
	}

	md.sequence = append(md.sequence, direction)
	md.counts[direction]++

	return onMotion(motion)
}

func (md *MotionDetector) FlowParams() flow.Params {
	return md.estimator.Params()
}

func (md *MotionDetector) Size() image.Point {
	return md.size
}

func (md *MotionDetector) FramesDecoded() int {
	return md.decoded
}

func (md *MotionDetector) FramesForwarded() int {
	return len(md.sequence)
}

func (md *MotionDetector) Sequence() []Direction {
	return append([]Direction(nil), md.sequence...)
}

func (md *MotionDetector) Count(d Direction) int {
	return md.counts[d]
}
