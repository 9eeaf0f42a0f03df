package aura

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gocv.io/x/gocv"

	"motionaura/internal/config"
	"motionaura/internal/frame/frametest"
	"motionaura/internal/logging"
	"motionaura/internal/motion"
	"motionaura/internal/video"
)

// fixture writes a panning MJPG clip of n frames and returns its path.
func fixture(t *testing.T, n, width, height, stepX int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.avi")
	mats := frametest.NewScene(width, height, 9).Pan(n, stepX, 0)
	defer frametest.Close(mats)

	ok, err := frametest.WriteVideo(path, "MJPG", 25, mats)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Skip("MJPG writer unavailable")
	}
	return path
}

func testConfig(t *testing.T, input string) config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.VideoPath = input
	cfg.OutputPath = filepath.Join(t.TempDir(), "output_video.avi")
	cfg.Codec = "MJPG"
	cfg.Progress = false
	return cfg
}

func countFrames(t *testing.T, path string) (int, int, int) {
	t.Helper()
	s, err := video.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	n, w, h := 0, 0, 0
	for f := s.Read(n); f != nil; f = s.Read(n) {
		w, h = f.Width(), f.Height()
		f.Close()
		n++
	}
	return n, w, h
}

func TestRun(t *testing.T) {
	input := fixture(t, 7, 320, 240, 4)
	cfg := testConfig(t, input)

	report, err := Run(context.Background(), cfg, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	if report.Output != cfg.OutputPath {
		t.Errorf("output %s, want %s", report.Output, cfg.OutputPath)
	}
	if report.FramesDecoded != 7 || report.FramesWritten != 3 {
		t.Errorf("decoded %d written %d, want 7 and 3", report.FramesDecoded, report.FramesWritten)
	}
	if report.Dominant() != motion.Right {
		t.Errorf("dominant %s, want right (sequence %v)", report.Dominant(), report.Sequence)
	}

	n, w, h := countFrames(t, cfg.OutputPath)
	if n != 3 {
		t.Errorf("output has %d frames, want 3", n)
	}
	if w != 160 || h != 120 {
		t.Errorf("output %dx%d, want 160x120", w, h)
	}
}

func TestRun_Deterministic(t *testing.T) {
	input := fixture(t, 9, 240, 180, 3)

	first, err := Run(context.Background(), testConfig(t, input), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Run(context.Background(), testConfig(t, input), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}

	if len(first.Sequence) != len(second.Sequence) {
		t.Fatalf("sequence lengths %d vs %d", len(first.Sequence), len(second.Sequence))
	}
	for i := range first.Sequence {
		if first.Sequence[i] != second.Sequence[i] {
			t.Errorf("frame %d: %s vs %s", i, first.Sequence[i], second.Sequence[i])
		}
	}
}

func TestRun_NotFound(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "missing.mp4"))

	_, err := Run(context.Background(), cfg, logging.Discard())
	var nf *video.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no output file should be written")
	}
}

func TestRun_SingleFrame(t *testing.T) {
	input := fixture(t, 1, 160, 120, 0)
	cfg := testConfig(t, input)

	_, err := Run(context.Background(), cfg, logging.Discard())
	if !errors.Is(err, motion.ErrTooShort) {
		t.Fatalf("got %v, want ErrTooShort", err)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no output file should be written for a single-frame video")
	}
}

func TestRun_TwoFrames(t *testing.T) {
	input := fixture(t, 2, 160, 120, 4)
	cfg := testConfig(t, input)

	_, err := Run(context.Background(), cfg, logging.Discard())
	if !errors.Is(err, motion.ErrTooShort) {
		t.Fatalf("got %v, want ErrTooShort", err)
	}
	if _, err := os.Stat(cfg.OutputPath); !os.IsNotExist(err) {
		t.Error("no output file should be written when no frame is forwarded")
	}
}

func TestRun_LogsSourceAndParams(t *testing.T) {
	input := fixture(t, 3, 160, 120, 4)
	cfg := testConfig(t, input)

	var buf bytes.Buffer
	if _, err := Run(context.Background(), cfg, logging.New(&buf, true)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, input) {
		t.Errorf("log does not name the source %s:\n%s", input, out)
	}
	if !strings.Contains(out, "WinSize:10") {
		t.Errorf("log does not carry the flow parameters:\n%s", out)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig(t, "")
	if _, err := Run(context.Background(), cfg, logging.Discard()); err == nil {
		t.Error("expected validation error")
	}
}

func TestProgressReader(t *testing.T) {
	mats := []gocv.Mat{
		gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3),
		gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC3),
	}
	defer frametest.Close(mats)

	p := newProgress(false, 0)
	src := &frametest.Reader{Mats: mats}
	r := p.Reader(src)
	for i := 0; ; i++ {
		f := r.Read(i)
		if f == nil {
			break
		}
		f.Close()
	}
	p.Finish()

	if src.Reads != 3 {
		t.Errorf("reads %d, want 3", src.Reads)
	}
}
