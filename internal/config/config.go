// Package config holds the run settings of the aura pipeline. Defaults
// reproduce the reference output: half-size frames, every second frame, a
// 30 fps MPEG-4 file named output_video.mp4.
package config

import (
	"errors"
	"fmt"
	"strings"

	"motionaura/internal/flow"
	"motionaura/internal/motion"
	"motionaura/internal/visual"
)

type Config struct {
	// Input (set from the positional argument).
	VideoPath string

	// Sampling.
	Scale     float64 // Default: 0.5.
	FrameSkip int     // Default: 2. Forward every FrameSkip-th decoded frame.

	// Flow and classification.
	Flow      flow.Params // Default: flow.DefaultParams().
	Threshold float64     // Default: 2.0 pixels.

	// Rendering.
	Blend visual.Blend // Default: 0.6 frame / 0.4 heatmap / 0 offset.

	// Output.
	OutputPath     string  // Default: "output_video.mp4".
	Codec          string  // Default: "mp4v".
	OutputFPS      float64 // Default: 30.
	MatchSourceFPS bool    // Default: false. Use source fps / FrameSkip instead of OutputFPS.

	// Display and logging.
	Progress bool
	Verbose  bool
}

func DefaultConfig() Config {
	return Config{
		Scale:          0.5,
		FrameSkip:      2,
		Flow:           flow.DefaultParams(),
		Threshold:      motion.DefaultThreshold,
		Blend:          visual.DefaultBlend(),
		OutputPath:     "output_video.mp4",
		Codec:          "mp4v",
		OutputFPS:      30,
		MatchSourceFPS: false,
		Progress:       true,
		Verbose:        false,
	}
}

func (c *Config) Validate() error {
	if c.Scale <= 0 || c.Scale > 1 {
		return fmt.Errorf("scale %.2f out of (0, 1]", c.Scale)
	}
	if c.FrameSkip < 1 {
		return fmt.Errorf("frame skip must be at least 1, got %d", c.FrameSkip)
	}
	if c.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %.2f", c.Threshold)
	}
	if err := c.Flow.Validate(); err != nil {
		return fmt.Errorf("flow: %w", err)
	}
	if len(c.Codec) != 4 {
		return fmt.Errorf("codec %q is not a fourcc", c.Codec)
	}
	if c.OutputFPS <= 0 {
		return fmt.Errorf("output fps must be positive, got %.2f", c.OutputFPS)
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return errors.New("output path is empty")
	}
	if c.VideoPath == "" {
		return errors.New("need exactly one video_file argument")
	}
	return nil
}

// FPS returns the output frame rate. With MatchSourceFPS the decimated source
// rate is used when the container reports one.
func (c *Config) FPS(sourceFPS float64) float64 {
	if c.MatchSourceFPS && sourceFPS > 0 {
		return sourceFPS / float64(c.FrameSkip)
	}
	return c.OutputFPS
}
