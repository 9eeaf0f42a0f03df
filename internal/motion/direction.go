package motion

import (
	"fmt"
	"math"

	"motionaura/internal/flow"
)

// Direction is the coarse dominant motion of a flow field.
type Direction int

const (
	Stationary Direction = iota
	Right
	Down
	Left
	Up
)

// DefaultThreshold is the minimum magnitude, in pixels, a vector needs to
// take part in the direction vote.
const DefaultThreshold = 2.0

var directionNames = [...]string{
	Stationary: "stationary",
	Right:      "right",
	Down:       "down",
	Left:       "left",
	Up:         "up",
}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func Directions() []Direction {
	return []Direction{Right, Down, Left, Up, Stationary}
}

func Classify(p *flow.Polar, threshold float64) (Direction, error) {
	magnitudes, angles, err := p.Values()
	if err != nil {
		return Stationary, err
	}
	return ClassifyAngles(magnitudes, angles, threshold), nil
}

// ClassifyAngles takes the circular mean of the angles whose magnitude is
// strictly above threshold and buckets it into a 90 degree sector. Angles
// are in radians with y pointing down, so pi/2 is downward motion.
func ClassifyAngles(magnitudes, angles []float32, threshold float64) Direction {
	var sumCos, sumSin float64
	count := 0

	for i, m := range magnitudes {
		if i >= len(angles) || float64(m) <= threshold {
			continue
		}
		a := float64(angles[i])
		sumCos += math.Cos(a)
		sumSin += math.Sin(a)
		count++
	}

	if count == 0 {
		return Stationary
	}
	// Opposing motions cancel out; no dominant direction remains.
	if math.Hypot(sumCos, sumSin) < 1e-6*float64(count) {
		return Stationary
	}

	return sector(math.Atan2(sumSin, sumCos))
}

func sector(angle float64) Direction {
	angle = math.Mod(angle, 2*math.Pi)
	if angle < 0 {
		angle += 2 * math.Pi
	}

	switch {
	case angle < math.Pi/4 || angle >= 7*math.Pi/4:
		return Right
	case angle < 3*math.Pi/4:
		return Down
	case angle < 5*math.Pi/4:
		return Left
	case angle < 7*math.Pi/4:
		return Up
	}
	return Stationary
}
