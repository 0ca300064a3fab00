// Package sim is the tank arena simulation kernel: oriented-rectangle
// geometry, the separating-axis collision test, kinematic integration and
// the collision rules that create and destroy entities.
//
// The kernel is pure and single-threaded. A World is owned by whoever drives
// its ticks; nothing here talks to the terminal, the clock or the disk.
package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vector is a 2D point or displacement in world units.
type Vector = r2.Vec

// Vec is shorthand for building a Vector.
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Dot returns the dot product of two vectors.
// The explicit conversions keep the compiler from fusing the multiply-add,
// so results match across architectures.
func Dot(v1, v2 Vector) float64 {
	return float64(v1.X*v2.X) + float64(v1.Y*v2.Y)
}

// Normalize returns the unit vector in the direction of v.
// ok is false for the zero vector.
func Normalize(v Vector) (unit Vector, ok bool) {
	mag := math.Sqrt(Dot(v, v))
	if mag == 0 || math.IsNaN(mag) {
		return Vector{}, false
	}
	return Vector{X: v.X / mag, Y: v.Y / mag}, true
}

// Perpendicular returns v rotated by 90 degrees: (-y, x).
func Perpendicular(v Vector) Vector {
	return Vector{X: -v.Y, Y: v.X}
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Direction returns the unit vector pointing at deg degrees.
func Direction(deg float64) Vector {
	r := Radians(deg)
	return Vector{X: math.Cos(r), Y: math.Sin(r)}
}

// RotatePoint rotates point around pivot by deg degrees.
//
// The angle is negated and the offset is taken pivot-relative, which makes
// the result pivot - R(deg)*(point-pivot). Corner winding, SAT and the
// terminal renderer all go through this function, so the convention only has
// to agree with itself.
func RotatePoint(point, pivot Vector, deg float64) Vector {
	r := -Radians(deg)
	sin, cos := math.Sin(r), math.Cos(r)
	magX := pivot.X - point.X
	magY := pivot.Y - point.Y
	return Vector{
		X: pivot.X + float64(magX*cos) + float64(magY*sin),
		Y: pivot.Y - float64(magX*sin) + float64(magY*cos),
	}
}

// NormalizeRotation wraps deg into [0, 360).
func NormalizeRotation(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	// -1e-15 + 360 rounds to 360.
	if r >= 360 {
		r = 0
	}
	return r
}

// add, sub and scale wrap the r2 helpers to keep call sites short.
func add(a, b Vector) Vector { return r2.Add(a, b) }

func sub(a, b Vector) Vector { return r2.Sub(a, b) }

func scale(f float64, v Vector) Vector { return r2.Scale(f, v) }
