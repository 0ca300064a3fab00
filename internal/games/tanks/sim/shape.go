package sim

import (
	"fmt"
	"math"
)

// Dimension is the width and height of a rectangle footprint.
// Half extents are derived once at construction.
type Dimension struct {
	width, height         float64
	halfWidth, halfHeight float64
}

// NewDimension creates a Dimension of the given size.
func NewDimension(width, height float64) Dimension {
	return Dimension{
		width:      width,
		height:     height,
		halfWidth:  width / 2,
		halfHeight: height / 2,
	}
}

func (d Dimension) Width() float64      { return d.width }
func (d Dimension) Height() float64     { return d.height }
func (d Dimension) HalfWidth() float64  { return d.halfWidth }
func (d Dimension) HalfHeight() float64 { return d.halfHeight }

// Body is an oriented rectangle: center position, size and rotation in
// degrees. Tanks, barrels and bullets all embed one.
type Body struct {
	Position Vector
	Size     Dimension
	Rotation float64
}

// Corners returns the four corners in fixed winding order, rotated about the
// center.
func (b Body) Corners() [4]Vector {
	p := b.Position
	hw, hh := b.Size.halfWidth, b.Size.halfHeight
	return [4]Vector{
		RotatePoint(Vec(p.X+hw, p.Y+hh), p, b.Rotation),
		RotatePoint(Vec(p.X+hw, p.Y-hh), p, b.Rotation),
		RotatePoint(Vec(p.X-hw, p.Y-hh), p, b.Rotation),
		RotatePoint(Vec(p.X-hw, p.Y+hh), p, b.Rotation),
	}
}

// Radius is the circumradius, used for the cheap rejection in Collide.
func (b Body) Radius() float64 {
	return math.Hypot(b.Size.halfWidth, b.Size.halfHeight)
}

// Contains reports whether world point p lies inside the rectangle
// (edges included).
func (b Body) Contains(p Vector) bool {
	d := sub(p, b.Position)
	r := Radians(b.Rotation)
	sin, cos := math.Sin(r), math.Cos(r)
	lx := d.X*cos + d.Y*sin
	ly := -d.X*sin + d.Y*cos
	return math.Abs(lx) <= b.Size.halfWidth && math.Abs(ly) <= b.Size.halfHeight
}

// Bounds returns the axis-aligned box around the rotated corners.
func (b Body) Bounds() (lo, hi Vector) {
	c := b.Corners()
	lo, hi = c[0], c[0]
	for _, v := range c[1:] {
		lo.X = math.Min(lo.X, v.X)
		lo.Y = math.Min(lo.Y, v.Y)
		hi.X = math.Max(hi.X, v.X)
		hi.Y = math.Max(hi.Y, v.Y)
	}
	return lo, hi
}

// Axes returns the normalized edge normals of a quadrilateral, one per edge,
// in corner order. Zero-length edges contribute no axis.
func Axes(corners [4]Vector) []Vector {
	axes := make([]Vector, 0, len(corners))
	for i := range corners {
		edge := sub(corners[i], corners[(i+1)%len(corners)])
		axis, ok := Normalize(Perpendicular(edge))
		if !ok {
			if strictGeometry {
				panic(fmt.Sprintf("sim: degenerate edge %d of %v", i, corners))
			}
			continue
		}
		axes = append(axes, axis)
	}
	return axes
}

// Projection is the [Min, Max] interval of a shape projected on an axis.
type Projection struct {
	Min, Max float64
}

// Project projects corners onto axis.
func Project(corners [4]Vector, axis Vector) Projection {
	p := Projection{Min: Dot(axis, corners[0])}
	p.Max = p.Min
	for _, c := range corners[1:] {
		d := Dot(axis, c)
		if d < p.Min {
			p.Min = d
		} else if d > p.Max {
			p.Max = d
		}
	}
	return p
}

// IntervalDistance is the signed gap between two projections.
// Positive means separated, zero means touching, negative means overlap.
func IntervalDistance(a, b Projection) float64 {
	if a.Min < b.Min {
		return b.Min - a.Max
	}
	return a.Min - b.Max
}
