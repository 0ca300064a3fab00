package sim

import "time"

// Rules are the world constants. Speeds are per second, angles in degrees.
type Rules struct {
	MapWidth  float64
	MapHeight float64

	TankSize   Dimension
	BarrelSize Dimension
	BulletSize Dimension

	TankSpeed     float64
	RotationSpeed float64
	AimSpeed      float64
	BulletSpeed   float64
	Reload        time.Duration
	TankHealth    int

	// AnchorBarrels snaps every barrel onto its hull after movement.
	// Off by default: barrels follow their hull only through a shared
	// velocity, and pushes move the hull alone.
	AnchorBarrels bool
}

// DefaultRules returns the classic arena: the original per-frame constants
// (5 deg, 3 and 10 units per frame) at 60 frames per second.
func DefaultRules() Rules {
	return Rules{
		MapWidth:      1600,
		MapHeight:     960,
		TankSize:      NewDimension(75, 70),
		BarrelSize:    NewDimension(16, 50),
		BulletSize:    NewDimension(12, 26),
		TankSpeed:     180,
		RotationSpeed: 300,
		AimSpeed:      300,
		BulletSpeed:   600,
		Reload:        700 * time.Millisecond,
		TankHealth:    100,
	}
}

// InBounds reports whether p lies in [0, MapWidth) x [0, MapHeight).
func (r Rules) InBounds(p Vector) bool {
	return p.X >= 0 && p.X < r.MapWidth && p.Y >= 0 && p.Y < r.MapHeight
}
