package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"motionaura/internal/config"
	"motionaura/internal/logging"
	"motionaura/internal/motion"
	"motionaura/internal/video"
)

func main() {
	defaults := config.DefaultConfig()

	app := &cli.App{
		Name:      "flow-direction",
		Usage:     "print the dominant motion direction of every sampled frame",
		ArgsUsage: "video_file",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "threshold", Value: defaults.Threshold, Usage: "minimum flow magnitude in pixels"},
			&cli.IntFlag{Name: "skip", Value: defaults.FrameSkip, Usage: "forward every n-th frame"},
			&cli.Float64Flag{Name: "scale", Value: defaults.Scale, Usage: "spatial downscale factor"},
			&cli.BoolFlag{Name: "json", Usage: "print the run report as JSON"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "debug logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("missing video file argument")
	}

	cfg := config.DefaultConfig()
	cfg.VideoPath = c.Args().First()
	cfg.Threshold = c.Float64("threshold")
	cfg.FrameSkip = c.Int("skip")
	cfg.Scale = c.Float64("scale")
	cfg.Verbose = c.Bool("verbose")
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(os.Stderr, cfg.Verbose)

	stream, err := video.Open(cfg.VideoPath)
	if err != nil {
		return err
	}
	defer stream.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	asJSON := c.Bool("json")
	detector := motion.NewMotionDetector(cfg.Threshold, cfg.Scale, cfg.FrameSkip, cfg.Flow)

	err = detector.Detect(ctx, stream, func(m *motion.Motion) error {
		logger.Debug("frame", "index", m.FrameIndex(), "mean_magnitude", m.MeanMagnitude())
		if !asJSON {
			printMotion(os.Stdout, m, stream.TimeAtFrame(m.Frame()))
		}
		return nil
	})
	if err != nil {
		return err
	}

	report, err := motion.NewMotionReport(detector, cfg.VideoPath, start)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Frames decoded: %d, sampled: %d\n", report.FramesDecoded, report.FramesWritten)
	fmt.Printf("Dominant direction: %s\n", report.Dominant())
	return nil
}

var directionColors = map[motion.Direction]*color.Color{
	motion.Right:      color.New(color.FgGreen),
	motion.Left:       color.New(color.FgYellow),
	motion.Up:         color.New(color.FgCyan),
	motion.Down:       color.New(color.FgMagenta),
	motion.Stationary: color.New(color.Faint),
}

func printMotion(w io.Writer, m *motion.Motion, seconds float64) {
	fmt.Fprintf(w, "frame %5d  %7.2fs  ", m.FrameIndex(), seconds)
	directionColors[m.Direction()].Fprintf(w, "%-10s", m.Direction())
	fmt.Fprintf(w, "  %.3f\n", m.MeanMagnitude())
}
