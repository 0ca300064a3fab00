package sim

import "time"

// EntityID identifies an entity for its whole lifetime. Zero means none.
type EntityID uint64

// Kind tags the entity variants.
type Kind uint8

const (
	KindTank Kind = iota + 1
	KindBarrel
	KindBullet
	KindPlayer
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindTank:
		return "tank"
	case KindBarrel:
		return "barrel"
	case KindBullet:
		return "bullet"
	case KindPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Entity is implemented by *Tank, *Barrel, *Bullet and *Player only.
type Entity interface {
	ID() EntityID
	Kind() Kind
	entity()
}

// Velocity is a polar velocity: heading in degrees and speed in units per
// second.
type Velocity struct {
	Angle float64
	Speed float64
}

// Vector converts the velocity to a per-second displacement.
func (v Velocity) Vector() Vector {
	return scale(v.Speed, Direction(v.Angle))
}

// Tank is a hull. Its barrel is a separate entity referenced by BarrelID.
type Tank struct {
	Body
	Velocity           Velocity
	RotationalVelocity float64 // degrees per second
	Health             int
	BarrelID           EntityID
	Color              string

	// Firing is the fire intent for the current tick. The integrator
	// consumes it.
	Firing    bool
	HasFired  bool
	LastFired time.Duration

	id EntityID
}

func (t *Tank) ID() EntityID { return t.id }
func (t *Tank) Kind() Kind   { return KindTank }
func (t *Tank) entity()      {}

// Barrel is a tank's turret. It moves with the hull but aims on its own.
// TankID points back at the hull so either half can be used to remove both.
type Barrel struct {
	Body
	Velocity           Velocity
	RotationalVelocity float64
	TankID             EntityID
	Color              string

	id EntityID
}

func (b *Barrel) ID() EntityID { return b.id }
func (b *Barrel) Kind() Kind   { return KindBarrel }
func (b *Barrel) entity()      {}

// Bullet flies in a straight line until it hits a tank or leaves the map.
// TankID is the shooter, used only to skip self hits.
type Bullet struct {
	Body
	Velocity Velocity
	TankID   EntityID

	id EntityID
}

func (b *Bullet) ID() EntityID { return b.id }
func (b *Bullet) Kind() Kind   { return KindBullet }
func (b *Bullet) entity()      {}

// Player binds a set of held keys to a tank.
type Player struct {
	TankID EntityID
	Keys   KeySet

	id EntityID
}

func (p *Player) ID() EntityID { return p.id }
func (p *Player) Kind() Kind   { return KindPlayer }
func (p *Player) entity()      {}

// bodyOf returns the shape of entities that have one.
func bodyOf(e Entity) (*Body, bool) {
	switch e := e.(type) {
	case *Tank:
		return &e.Body, true
	case *Barrel:
		return &e.Body, true
	case *Bullet:
		return &e.Body, true
	default:
		return nil, false
	}
}

// velocityOf returns the linear velocity of entities that move.
func velocityOf(e Entity) (*Velocity, bool) {
	switch e := e.(type) {
	case *Tank:
		return &e.Velocity, true
	case *Barrel:
		return &e.Velocity, true
	case *Bullet:
		return &e.Velocity, true
	default:
		return nil, false
	}
}

// BodyOf returns a copy of an entity's shape.
// ok is false for entities without one (players).
func BodyOf(e Entity) (Body, bool) {
	b, ok := bodyOf(e)
	if !ok {
		return Body{}, false
	}
	return *b, true
}
