package sim

import "time"

// Shot records a bullet spawned by the integrator.
type Shot struct {
	BulletID EntityID
	TankID   EntityID
	Position Vector
	Angle    float64
}

// Kill records a tank destroyed by a bullet.
type Kill struct {
	TankID    EntityID
	BarrelID  EntityID
	BulletID  EntityID
	ShooterID EntityID
}

// Push records the first tank of a colliding pair being moved by the MTV.
type Push struct {
	TankID  EntityID
	OtherID EntityID
	MTV     Vector
}

// Resolution is everything the collision pass changed.
type Resolution struct {
	Kills   []Kill
	Pushes  []Push
	Expired []EntityID // bullets that left the map
	Stopped []EntityID // other entities outside the map, speed zeroed
}

// StepResult describes one tick.
type StepResult struct {
	Tick  uint64
	Time  time.Duration
	Shots []Shot
	Resolution
}
