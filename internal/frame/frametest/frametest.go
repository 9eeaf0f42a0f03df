// Package frametest builds synthetic frames and videos for tests.
package frametest

import (
	"image"
	"image/color"
	"math/rand"

	"gocv.io/x/gocv"

	"motionaura/internal/frame"
)

type blob struct {
	rect  image.Rectangle
	color color.RGBA
}

// Scene is a fixed set of textured blobs that can be rendered at any
// horizontal and vertical offset.
type Scene struct {
	width, height int
	blobs         []blob
}

// NewScene lays out blobs deterministically from seed.
func NewScene(width, height int, seed int64) *Scene {
	rng := rand.New(rand.NewSource(seed))
	s := &Scene{width: width, height: height}

	for i := 0; i < width*height/600; i++ {
		w, h := 6+rng.Intn(18), 6+rng.Intn(18)
		x, y := rng.Intn(width)-w/2, rng.Intn(height)-h/2
		v := uint8(40 + rng.Intn(215))
		s.blobs = append(s.blobs, blob{
			rect:  image.Rect(x, y, x+w, y+h),
			color: color.RGBA{R: v, G: uint8(255 - int(v)/2), B: uint8(rng.Intn(256)), A: 0},
		})
	}
	return s
}

// Render draws the scene moved by (dx, dy) pixels as an 8-bit BGR image.
func (s *Scene) Render(dx, dy int) gocv.Mat {
	canvas := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(20, 20, 20, 0), s.height, s.width, gocv.MatTypeCV8UC3)
	for _, b := range s.blobs {
		gocv.Rectangle(&canvas, b.rect.Add(image.Pt(dx, dy)), b.color, -1)
	}

	smooth := gocv.NewMat()
	gocv.GaussianBlur(canvas, &smooth, image.Pt(5, 5), 0, 0, gocv.BorderDefault)
	canvas.Close()

	return smooth
}

// Pan renders n frames, each moved by (stepX, stepY) from the previous one.
func (s *Scene) Pan(n, stepX, stepY int) []gocv.Mat {
	mats := make([]gocv.Mat, 0, n)
	for i := 0; i < n; i++ {
		mats = append(mats, s.Render(i*stepX, i*stepY))
	}
	return mats
}

// Close releases every matrix in mats.
func Close(mats []gocv.Mat) {
	for i := range mats {
		mats[i].Close()
	}
}

// Reader serves clones of a fixed list of matrices as a frame.Reader.
type Reader struct {
	Mats  []gocv.Mat
	Reads int
	next  int
}

func (r *Reader) Read(frameIndex int) *frame.Frame {
	r.Reads++
	if r.next >= len(r.Mats) {
		return nil
	}
	mat := r.Mats[r.next].Clone()
	r.next++

	f, err := frame.NewFrame(frameIndex, &mat)
	if err != nil {
		mat.Close()
		return nil
	}
	return f
}

// WriteVideo encodes mats into path. It reports false when the local OpenCV
// build cannot encode with codec.
func WriteVideo(path, codec string, fps float64, mats []gocv.Mat) (bool, error) {
	if len(mats) == 0 {
		return false, nil
	}

	vw, err := gocv.VideoWriterFile(path, codec, fps, mats[0].Cols(), mats[0].Rows(), true)
	if err != nil || !vw.IsOpened() {
		if vw != nil {
			vw.Close()
		}
		return false, nil
	}
	defer vw.Close()

	for _, m := range mats {
		if err := vw.Write(m); err != nil {
			return true, err
		}
	}
	return true, nil
}
