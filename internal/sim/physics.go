package sim

import "github.com/vovakirdan/loop-heist/internal/core"

// Physics is the geometry oracle the simulation relies on.
// All queries are pure; the oracle owns no simulation state.
type Physics interface {
	// Overlaps reports whether two bodies intersect.
	Overlaps(a, b core.Rect) bool
	// SegmentBlockedByWall reports whether static geometry cuts the line a-b.
	SegmentBlockedByWall(a, b core.Vec) bool
	// Move slides body by delta, stopping at walls and the given blockers.
	Move(body core.Rect, delta core.Vec, blockers []core.Rect) core.Rect
}
