// Package core provides fundamental types and utilities for the heist game.
// It contains no external dependencies (especially no Bubble Tea) to keep the
// simulation pure and testable.
package core

import "math"

// Vec is a point or displacement in fixed-point world space.
// The Y axis points down, matching screen coordinates.
type Vec struct {
	X, Y Fixed
}

// V creates a vector from whole world units.
func V(x, y int) Vec {
	return Vec{X: ToFixed(x), Y: ToFixed(y)}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// IsZero reports whether both components are zero.
func (v Vec) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Floats returns the components in world units.
func (v Vec) Floats() (float64, float64) {
	return v.X.Float(), v.Y.Float()
}

// DistanceTo returns the Euclidean distance to o in world units.
func (v Vec) DistanceTo(o Vec) float64 {
	dx, dy := o.Sub(v).Floats()
	return math.Hypot(dx, dy)
}

// Rect represents an axis-aligned bounding box used for collision detection.
type Rect struct {
	X, Y Fixed // Top-left corner position
	W, H Fixed // Width and height
}

// NewRect creates a rectangle from whole world units.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: ToFixed(x), Y: ToFixed(y), W: ToFixed(w), H: ToFixed(h)}
}

// RectAround creates a w x h rectangle centred on c.
func RectAround(c Vec, w, h Fixed) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() Fixed {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() Fixed {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point is inside this rectangle.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec {
	return Vec{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns the rectangle moved by d.
func (r Rect) Translate(d Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampFixed restricts a fixed-point value to be within [min, max].
func ClampFixed(val, min, max Fixed) Fixed {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
