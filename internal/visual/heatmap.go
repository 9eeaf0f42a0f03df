package visual

import (
	"fmt"

	"gocv.io/x/gocv"
)

// flatRange is the smallest magnitude spread that still gets stretched to
// the full 0-255 range.
const flatRange = 1e-6

// Blend weights of the source frame and of the heatmap.
type Blend struct {
	Alpha float64
	Beta  float64
	Gamma float64
}

func DefaultBlend() Blend {
	return Blend{Alpha: 0.6, Beta: 0.4, Gamma: 0}
}

// Heatmap min-max normalises a CV_32F magnitude map over this frame only and
// colorizes it with the jet colormap. A flat map becomes uniform blue.
func Heatmap(magnitude gocv.Mat) (gocv.Mat, error) {
	if magnitude.Empty() || magnitude.Channels() != 1 {
		return gocv.NewMat(), fmt.Errorf("magnitude must be a non-empty single-channel matrix")
	}

	scaled := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0),
		magnitude.Rows(), magnitude.Cols(), gocv.MatTypeCV8U)
	defer scaled.Close()

	minVal, maxVal, _, _ := gocv.MinMaxLoc(magnitude)
	if float64(maxVal)-float64(minVal) >= flatRange {
		normalized := gocv.NewMat()
		defer normalized.Close()

		gocv.Normalize(magnitude, &normalized, 0, 255, gocv.NormMinMax)
		if err := truncate(normalized, scaled); err != nil {
			return gocv.NewMat(), err
		}
	}

	colored := gocv.NewMat()
	gocv.ApplyColorMap(scaled, &colored, gocv.ColormapJet)

	return colored, nil
}

// truncate floors each normalized value into the 8-bit dst, clamped to 0-255.
func truncate(normalized, dst gocv.Mat) error {
	src, err := normalized.DataPtrFloat32()
	if err != nil {
		return fmt.Errorf("normalized magnitude: %w", err)
	}
	out, err := dst.DataPtrUint8()
	if err != nil {
		return fmt.Errorf("heatmap levels: %w", err)
	}
	if len(src) != len(out) {
		return fmt.Errorf("heatmap has %d levels for %d values", len(out), len(src))
	}

	for i, v := range src {
		switch {
		case v >= 255:
			out[i] = 255
		case v > 0:
			out[i] = uint8(v)
		default:
			out[i] = 0
		}
	}
	return nil
}

func (b Blend) Apply(frame, heatmap gocv.Mat) (gocv.Mat, error) {
	if frame.Rows() != heatmap.Rows() || frame.Cols() != heatmap.Cols() {
		return gocv.NewMat(), fmt.Errorf("heatmap %dx%d does not match frame %dx%d",
			heatmap.Cols(), heatmap.Rows(), frame.Cols(), frame.Rows())
	}
	if frame.Type() != heatmap.Type() {
		return gocv.NewMat(), fmt.Errorf("heatmap type %v does not match frame type %v", heatmap.Type(), frame.Type())
	}

	out := gocv.NewMat()
	gocv.AddWeighted(frame, b.Alpha, heatmap, b.Beta, b.Gamma, &out)

	return out, nil
}

func (b Blend) Aura(frame, magnitude gocv.Mat) (gocv.Mat, error) {
	heat, err := Heatmap(magnitude)
	if err != nil {
		return heat, err
	}
	defer heat.Close()

	return b.Apply(frame, heat)
}
