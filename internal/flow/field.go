package flow

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Field holds one (dx, dy) displacement per pixel as CV_32FC2.
type Field struct {
	mat gocv.Mat
}

// NewField takes ownership of mat.
func NewField(mat gocv.Mat) (*Field, error) {
	if mat.Empty() || mat.Type() != gocv.MatTypeCV32FC2 {
		mat.Close()
		return nil, fmt.Errorf("flow field must be a non-empty CV32FC2 matrix")
	}
	return &Field{mat: mat}, nil
}

func (f *Field) Mat() gocv.Mat {
	return f.mat
}

func (f *Field) Rows() int {
	return f.mat.Rows()
}

func (f *Field) Cols() int {
	return f.mat.Cols()
}

func (f *Field) Polar() (*Polar, error) {
	channels := gocv.Split(f.mat)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	if len(channels) != 2 {
		return nil, fmt.Errorf("flow field has %d channels, want 2", len(channels))
	}

	p := &Polar{
		Magnitude: gocv.NewMat(),
		Angle:     gocv.NewMat(),
	}
	gocv.CartToPolar(channels[0], channels[1], &p.Magnitude, &p.Angle, false)

	return p, nil
}

func (f *Field) Close() {
	f.mat.Close()
}

// Polar is the per-pixel magnitude and angle of a Field, both CV_32F.
type Polar struct {
	Magnitude gocv.Mat
	Angle     gocv.Mat
}

// Values exposes the underlying float data. The slices alias the matrices
// and are only valid until Close.
func (p *Polar) Values() (magnitudes, angles []float32, err error) {
	if magnitudes, err = p.Magnitude.DataPtrFloat32(); err != nil {
		return nil, nil, fmt.Errorf("magnitude data: %w", err)
	}
	if angles, err = p.Angle.DataPtrFloat32(); err != nil {
		return nil, nil, fmt.Errorf("angle data: %w", err)
	}
	return magnitudes, angles, nil
}

func (p *Polar) MeanMagnitude() float64 {
	return p.Magnitude.Mean().Val1
}

func (p *Polar) Close() {
	p.Magnitude.Close()
	p.Angle.Close()
}
