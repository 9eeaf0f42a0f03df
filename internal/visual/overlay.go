package visual

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 0}

// Overlay is one line of text burned into every output frame.
type Overlay struct {
	Text   string
	Origin image.Point
}

// Labels returns the direction and source overlays at their fixed positions.
func Labels(direction, source string) []Overlay {
	return []Overlay{
		{Text: "Direction: " + direction, Origin: image.Pt(50, 50)},
		{Text: "Processing: " + source, Origin: image.Pt(50, 100)},
	}
}

// Annotate draws the overlays on img in white Hershey simplex, scale 1,
// thickness 2.
func Annotate(img *gocv.Mat, overlays []Overlay) {
	for _, o := range overlays {
		gocv.PutText(img, o.Text, o.Origin, gocv.FontHersheySimplex, 1, white, 2)
	}
}
