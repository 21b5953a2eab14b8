package core

import "math"

// Scale is the number of fixed-point steps in one world unit.
// Positions are kept in fixed point so a replayed recording retraces the
// original path bit for bit.
const Scale = 1000

// Fixed represents a fixed-point world coordinate (scaled by Scale).
type Fixed int64

// ToFixed converts whole world units to fixed point.
func ToFixed(units int) Fixed {
	return Fixed(units) * Scale
}

// FixedFromFloat rounds a world coordinate to the nearest fixed-point step.
func FixedFromFloat(v float64) Fixed {
	return Fixed(math.Round(v * Scale))
}

// Float returns the value in world units.
func (f Fixed) Float() float64 {
	return float64(f) / Scale
}

// Units converts to whole world units (truncated).
func (f Fixed) Units() int {
	return int(f / Scale)
}

// Abs returns absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Div divides by an integer. Division by zero yields zero.
func (f Fixed) Div(n int) Fixed {
	if n == 0 {
		return 0
	}
	return f / Fixed(n)
}
