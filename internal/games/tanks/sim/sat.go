package sim

import "math"

// Collide runs the separating-axis test on two oriented rectangles.
//
// When they overlap (or touch) it returns the minimum translation vector: the
// displacement that, added to a's position, separates a from b along the axis
// of least penetration. The axis is chosen from a's four edge normals followed
// by b's; on equal overlap the earlier axis wins.
func Collide(a, b Body) (mtv Vector, hit bool) {
	// Circumscribed circles that do not touch cannot hold overlapping
	// rectangles, and SAT would find a separating axis for them anyway.
	if math.Hypot(a.Position.X-b.Position.X, a.Position.Y-b.Position.Y) > a.Radius()+b.Radius() {
		return Vector{}, false
	}

	ca, cb := a.Corners(), b.Corners()
	axes := append(Axes(ca), Axes(cb)...)
	if len(axes) == 0 {
		return Vector{}, false
	}

	minOverlap := math.Inf(1)
	var best Vector
	for _, axis := range axes {
		d := IntervalDistance(Project(ca, axis), Project(cb, axis))
		if d > 0 {
			return Vector{}, false
		}
		if overlap := math.Abs(d); overlap < minOverlap {
			minOverlap = overlap
			best = axis
		}
	}

	if Dot(sub(a.Position, b.Position), best) < 0 {
		best = scale(-1, best)
	}
	return scale(minOverlap, best), true
}
