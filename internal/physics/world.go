// Package physics answers the geometric questions the simulation asks:
// whether two bodies overlap, whether a wall blocks a line of sight, and how
// far a body can travel before it runs into something solid.
package physics

import "github.com/vovakirdan/loop-heist/internal/core"

// World holds the static geometry of one level.
// It never owns simulation state; every query is pure.
type World struct {
	bounds core.Rect
	walls  []core.Rect
}

// NewWorld creates a world of the given size in world units.
func NewWorld(width, height int, walls []core.Rect) *World {
	w := &World{
		bounds: core.NewRect(0, 0, width, height),
		walls:  make([]core.Rect, len(walls)),
	}
	copy(w.walls, walls)
	return w
}

// Bounds returns the playable area.
func (w *World) Bounds() core.Rect {
	return w.bounds
}

// Walls returns the static wall rectangles.
func (w *World) Walls() []core.Rect {
	return w.walls
}

// Overlaps reports whether two bodies intersect.
func (w *World) Overlaps(a, b core.Rect) bool {
	return a.Intersects(b)
}

// SegmentBlockedByWall reports whether any wall crosses the straight line
// from a to b.
func (w *World) SegmentBlockedByWall(a, b core.Vec) bool {
	for _, wall := range w.walls {
		if SegmentIntersectsRect(a, b, wall) {
			return true
		}
	}
	return false
}

// Move slides body by delta and returns where it ends up.
// Motion is resolved one axis at a time against the walls and the extra
// blockers (closed doors), then clamped to the world bounds. A solid the body
// already overlaps before moving is ignored so a door closing on an actor
// does not trap it.
func (w *World) Move(body core.Rect, delta core.Vec, blockers []core.Rect) core.Rect {
	solids := make([]core.Rect, 0, len(w.walls)+len(blockers))
	for _, s := range w.walls {
		if !s.Intersects(body) {
			solids = append(solids, s)
		}
	}
	for _, s := range blockers {
		if !s.Intersects(body) {
			solids = append(solids, s)
		}
	}

	if delta.X != 0 {
		body.X += delta.X
		for _, s := range solids {
			if !body.Intersects(s) {
				continue
			}
			if delta.X > 0 {
				body.X = s.X - body.W
			} else {
				body.X = s.Right()
			}
		}
		body.X = core.ClampFixed(body.X, w.bounds.X, w.bounds.Right()-body.W)
	}

	if delta.Y != 0 {
		body.Y += delta.Y
		for _, s := range solids {
			if !body.Intersects(s) {
				continue
			}
			if delta.Y > 0 {
				body.Y = s.Y - body.H
			} else {
				body.Y = s.Bottom()
			}
		}
		body.Y = core.ClampFixed(body.Y, w.bounds.Y, w.bounds.Bottom()-body.H)
	}

	return body
}
