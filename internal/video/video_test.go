package video

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"motionaura/internal/frame/frametest"
)

func TestOpen_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp4")
	_, err := Open(path)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want NotFoundError", err)
	}
	if nf.Path != path {
		t.Errorf("path %q, want %q", nf.Path, path)
	}
}

func TestOpen_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.mp4")
	if err := os.WriteFile(path, []byte("this is not a video container"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	var oe *OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("got %v, want OpenError", err)
	}
}

func TestWriterAndStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.avi")
	mats := frametest.NewScene(64, 48, 2).Pan(4, 1, 0)
	defer frametest.Close(mats)

	w, err := NewWriter(path, "MJPG", 30, image.Pt(64, 48))
	if err != nil {
		t.Skipf("MJPG writer unavailable: %v", err)
	}
	for _, m := range mats {
		if err := w.Write(m); err != nil {
			t.Fatal(err)
		}
	}
	if w.Written() != 4 {
		t.Errorf("written %d, want 4", w.Written())
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
	if err := w.Write(mats[0]); !errors.Is(err, ErrWriterClosed) {
		t.Errorf("write after close: got %v", err)
	}

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if s.Width() != 64 || s.Height() != 48 {
		t.Errorf("stream %dx%d, want 64x48", s.Width(), s.Height())
	}
	n := 0
	for f := s.Read(n); f != nil; f = s.Read(n) {
		if f.FrameIndex() != n {
			t.Errorf("frame index %d, want %d", f.FrameIndex(), n)
		}
		f.Close()
		n++
	}
	if n != 4 {
		t.Errorf("read %d frames, want 4", n)
	}

	s.Close()
	s.Close()
}

func TestWriter_RejectsWrongSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.avi")
	w, err := NewWriter(path, "MJPG", 30, image.Pt(32, 24))
	if err != nil {
		t.Skipf("MJPG writer unavailable: %v", err)
	}
	defer w.Close()

	mats := frametest.NewScene(64, 48, 2).Pan(1, 0, 0)
	defer frametest.Close(mats)
	if err := w.Write(mats[0]); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestNewWriter_InvalidSize(t *testing.T) {
	if _, err := NewWriter(filepath.Join(t.TempDir(), "x.avi"), "MJPG", 30, image.Pt(0, 10)); err == nil {
		t.Error("expected error for empty size")
	}
}
