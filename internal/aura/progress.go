package aura

import (
	"os"

	"github.com/schollz/progressbar/v3"

	"motionaura/internal/frame"
)

// progress counts decoded frames, forwarded or not.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(enabled bool, total int) *progress {
	limit := int64(total)
	if total <= 0 {
		limit = -1
	}

	if !enabled {
		return &progress{bar: progressbar.DefaultSilent(limit)}
	}

	return &progress{bar: progressbar.NewOptions64(limit,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = os.Stderr.WriteString("\n")
		}),
	)}
}

func (p *progress) Reader(r frame.Reader) frame.Reader {
	return &progressReader{reader: r, bar: p.bar}
}

func (p *progress) Finish() {
	_ = p.bar.Finish()
}

type progressReader struct {
	reader frame.Reader
	bar    *progressbar.ProgressBar
}

func (pr *progressReader) Read(frameIndex int) *frame.Frame {
	f := pr.reader.Read(frameIndex)
	if f != nil {
		_ = pr.bar.Add(1)
	}
	return f
}
