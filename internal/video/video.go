package video

import (
	"errors"
	"fmt"
	"os"

	"gocv.io/x/gocv"
)

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("video file not found: %s", e.Path)
}

// OpenError reports a file the decode backend could not open.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("unable to open video file: %s", e.Path)
	}
	return fmt.Sprintf("unable to open video file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Open checks that videoPath exists and opens a decode stream on it.
func Open(videoPath string) (*Stream, error) {
	if _, err := os.Stat(videoPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Path: videoPath}
		}
		return nil, &OpenError{Path: videoPath, Err: err}
	}

	capture, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, &OpenError{Path: videoPath, Err: err}
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, &OpenError{Path: videoPath}
	}

	return &Stream{Video: capture, path: videoPath}, nil
}
