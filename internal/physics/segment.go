package physics

import "github.com/vovakirdan/loop-heist/internal/core"

// SegmentIntersectsRect reports whether the segment a-b passes through the
// interior of r. A segment that only touches an edge or a corner, or runs
// along an edge, does not intersect, matching core.Rect.Intersects. It clips the segment parametrically against each slab (Liang-Barsky) in
// integer arithmetic so the answer never depends on float rounding.
func SegmentIntersectsRect(a, b core.Vec, r core.Rect) bool {
	dx := int64(b.X - a.X)
	dy := int64(b.Y - a.Y)

	// t is kept as the fraction num/den with den > 0.
	tMinNum, tMinDen := int64(0), int64(1)
	tMaxNum, tMaxDen := int64(1), int64(1)

	clip := func(p, q int64) bool {
		// Parallel to this edge: inside iff strictly past it.
		if p == 0 {
			return q > 0
		}
		num, den := q, p
		if den < 0 {
			num, den = -num, -den
		}
		if p < 0 {
			// Entering: t >= num/den
			if num*tMinDen > tMinNum*den {
				tMinNum, tMinDen = num, den
			}
		} else {
			// Leaving: t <= num/den
			if num*tMaxDen < tMaxNum*den {
				tMaxNum, tMaxDen = num, den
			}
		}
		return tMinNum*tMaxDen < tMaxNum*tMinDen
	}

	left := int64(r.X - a.X)
	right := int64(r.Right() - a.X)
	top := int64(r.Y - a.Y)
	bottom := int64(r.Bottom() - a.Y)

	return clip(-dx, -left) &&
		clip(dx, right) &&
		clip(-dy, -top) &&
		clip(dy, bottom)
}
