package motion

import (
	"fmt"
	"time"

	uuid "github.com/gofrs/uuid/v5"
)

// MotionReport summarises one detection run.
type MotionReport struct {
	UUID          string         `json:"uuid"`
	Source        string         `json:"source"`
	Output        string         `json:"output,omitempty"`
	Width         int            `json:"width"`
	Height        int            `json:"height"`
	FramesDecoded int            `json:"frames_decoded"`
	FramesWritten int            `json:"frames_written"`
	Directions    map[string]int `json:"directions"`
	Sequence      []Direction    `json:"sequence"`
	Duration      string         `json:"duration"`
	Date          string         `json:"date"`
}

// NewMotionReport builds the report of a run started at start. The run id is
// generated here; it only identifies the run in logs and reports.
func NewMotionReport(md *MotionDetector, source string, start time.Time) (*MotionReport, error) {
	ref, err := uuid.NewV4()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID: %w", err)
	}

	directions := make(map[string]int, len(directionNames))
	for _, d := range Directions() {
		directions[d.String()] = md.Count(d)
	}

	return &MotionReport{
		UUID:          ref.String(),
		Source:        source,
		Width:         md.Size().X,
		Height:        md.Size().Y,
		FramesDecoded: md.FramesDecoded(),
		FramesWritten: md.FramesForwarded(),
		Directions:    directions,
		Sequence:      md.Sequence(),
		Duration:      fmt.Sprintf("%.2f", time.Since(start).Seconds()),
		Date:          start.Format(time.RFC3339),
	}, nil
}

// Dominant returns the most frequent direction, ties broken by display order.
func (r *MotionReport) Dominant() Direction {
	best, bestCount := Stationary, -1
	for _, d := range Directions() {
		if c := r.Directions[d.String()]; c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}
