// Package aura drives the full pipeline: decode, sample, estimate flow,
// render the magnitude heatmap, classify the direction and encode the
// annotated frames.
package aura

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"motionaura/internal/config"
	"motionaura/internal/motion"
	"motionaura/internal/video"
	"motionaura/internal/visual"
)

// Run processes cfg.VideoPath into cfg.OutputPath. The decode and encode
// handles are released on every return path. The output file is only created
// once a first frame pair has been compared.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger) (*motion.MotionReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	stream, err := video.Open(cfg.VideoPath)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	fps := cfg.FPS(stream.Fps())
	logger.Info("video opened",
		"path", stream.Path(),
		"width", stream.Width(),
		"height", stream.Height(),
		"fps", stream.Fps(),
		"frames", stream.FrameCount(),
	)

	progress := newProgress(cfg.Progress, stream.FrameCount())
	defer progress.Finish()

	var writer *video.Writer
	defer func() { _ = writer.Close() }()

	source := filepath.Base(cfg.VideoPath)
	detector := motion.NewMotionDetector(cfg.Threshold, cfg.Scale, cfg.FrameSkip, cfg.Flow)
	logger.Debug("farneback", "params", fmt.Sprintf("%+v", detector.FlowParams()))

	err = detector.Detect(ctx, progress.Reader(stream), func(m *motion.Motion) error {
		if writer == nil {
			w, err := video.NewWriter(cfg.OutputPath, cfg.Codec, fps, m.Frame().Size())
			if err != nil {
				return err
			}
			writer = w
			logger.Info("writing output",
				"path", cfg.OutputPath,
				"width", m.Frame().Width(),
				"height", m.Frame().Height(),
				"fps", fps,
			)
		}

		out, err := cfg.Blend.Aura(*m.Frame().Mat(), m.Polar().Magnitude)
		if err != nil {
			return fmt.Errorf("render frame %d: %w", m.FrameIndex(), err)
		}
		defer out.Close()

		visual.Annotate(&out, visual.Labels(m.Direction().String(), source))

		logger.Debug("frame",
			"index", m.FrameIndex(),
			"direction", m.Direction(),
			"mean_magnitude", fmt.Sprintf("%.3f", m.MeanMagnitude()),
		)

		return writer.Write(out)
	})
	if err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", cfg.OutputPath, err)
	}

	report, err := motion.NewMotionReport(detector, cfg.VideoPath, start)
	if err != nil {
		return nil, err
	}
	report.Output = writer.Path()
	report.FramesWritten = writer.Written()

	logger.Info("video processed",
		"run", report.UUID,
		"decoded", report.FramesDecoded,
		"written", report.FramesWritten,
		"dominant", report.Dominant(),
		"duration", report.Duration,
	)

	return report, nil
}
