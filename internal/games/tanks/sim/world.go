package sim

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// World is the entity table plus the simulation clock.
//
// Entities are kept in a map for lookup and in a slice for iteration, so
// every pass visits them in creation order and two worlds fed the same
// input evolve identically.
type World struct {
	rules    Rules
	entities map[EntityID]Entity
	order    []EntityID
	nextID   EntityID
	clock    time.Duration
	tick     uint64
	logger   *log.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for spawn and kill events.
func WithLogger(l *log.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorld creates an empty world.
func NewWorld(rules Rules, opts ...Option) *World {
	w := &World{
		rules:    rules,
		entities: make(map[EntityID]Entity),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Rules returns the world constants.
func (w *World) Rules() Rules { return w.rules }

// Now returns the simulation clock.
func (w *World) Now() time.Duration { return w.clock }

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 { return w.tick }

// SetReload changes the reload time for every tank from the next tick on.
func (w *World) SetReload(d time.Duration) { w.rules.Reload = d }

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.order) }

// Step advances the world by dt: input, integration, then collisions.
func (w *World) Step(dt time.Duration) StepResult {
	w.tick++
	w.clock += dt

	w.ApplyInput()
	res := StepResult{Tick: w.tick, Time: w.clock}
	res.Shots = w.Integrate(dt)
	res.Resolution = w.Resolve()
	return res
}

// TankSpec places a new tank.
type TankSpec struct {
	Position Vector
	Rotation float64
	Color    string
}

// SpawnTank adds a tank and its barrel. The barrel starts centered on the
// hull with the same heading.
func (w *World) SpawnTank(spec TankSpec) *Tank {
	rot := NormalizeRotation(spec.Rotation)
	tank := &Tank{
		Body: Body{
			Position: spec.Position,
			Size:     w.rules.TankSize,
			Rotation: rot,
		},
		Velocity: Velocity{Angle: rot},
		Health:   w.rules.TankHealth,
		Color:    spec.Color,
		id:       w.allocID(),
	}
	barrel := &Barrel{
		Body: Body{
			Position: spec.Position,
			Size:     w.rules.BarrelSize,
			Rotation: rot,
		},
		Velocity: Velocity{Angle: rot},
		TankID:   tank.id,
		Color:    spec.Color,
		id:       w.allocID(),
	}
	tank.BarrelID = barrel.id

	w.insert(tank)
	w.insert(barrel)
	w.logger.Debug("tank spawned", "tank", tank.id, "barrel", barrel.id, "x", spec.Position.X, "y", spec.Position.Y)
	return tank
}

// AddPlayer binds a new player to a tank.
func (w *World) AddPlayer(tankID EntityID) *Player {
	p := &Player{TankID: tankID, id: w.allocID()}
	w.insert(p)
	return p
}

// spawnBullet lays BulletSize.Height along the heading, so the long side
// of the shell points where it flies.
func (w *World) spawnBullet(owner *Tank, pos Vector, angle float64) *Bullet {
	size := w.rules.BulletSize
	b := &Bullet{
		Body: Body{
			Position: pos,
			Size:     NewDimension(size.Height(), size.Width()),
			Rotation: angle,
		},
		Velocity: Velocity{Angle: angle, Speed: w.rules.BulletSpeed},
		TankID:   owner.id,
		id:       w.allocID(),
	}
	w.insert(b)
	return b
}

func (w *World) allocID() EntityID {
	w.nextID++
	return w.nextID
}

func (w *World) insert(e Entity) {
	w.entities[e.ID()] = e
	w.order = append(w.order, e.ID())
}

// Get looks up an entity.
func (w *World) Get(id EntityID) (Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Tank looks up a tank. Missing ids and other kinds report false.
func (w *World) Tank(id EntityID) (*Tank, bool) {
	t, ok := w.entities[id].(*Tank)
	return t, ok
}

// Barrel looks up a barrel.
func (w *World) Barrel(id EntityID) (*Barrel, bool) {
	b, ok := w.entities[id].(*Barrel)
	return b, ok
}

// Bullet looks up a bullet.
func (w *World) Bullet(id EntityID) (*Bullet, bool) {
	b, ok := w.entities[id].(*Bullet)
	return b, ok
}

// Player looks up a player.
func (w *World) Player(id EntityID) (*Player, bool) {
	p, ok := w.entities[id].(*Player)
	return p, ok
}

// Each calls fn for every entity in creation order until fn returns false.
// fn must not add or remove entities.
func (w *World) Each(fn func(Entity) bool) {
	for _, id := range w.order {
		if !fn(w.entities[id]) {
			return
		}
	}
}

// IDs returns a snapshot of live entity ids in creation order.
func (w *World) IDs() []EntityID {
	return slices.Clone(w.order)
}

// Count returns the number of live entities of a kind.
func (w *World) Count(kind Kind) int {
	n := 0
	for _, e := range w.entities {
		if e.Kind() == kind {
			n++
		}
	}
	return n
}

// Remove deletes entities. Removing either half of a tank removes both
// hull and barrel. Unknown ids are ignored.
func (w *World) Remove(ids ...EntityID) {
	doomed := make(map[EntityID]struct{}, len(ids)*2)
	for _, id := range ids {
		switch e := w.entities[id].(type) {
		case nil:
			continue
		case *Tank:
			doomed[e.BarrelID] = struct{}{}
		case *Barrel:
			doomed[e.TankID] = struct{}{}
		}
		doomed[id] = struct{}{}
	}
	w.drop(doomed)
}

func (w *World) drop(doomed map[EntityID]struct{}) {
	if len(doomed) == 0 {
		return
	}
	for id := range doomed {
		delete(w.entities, id)
	}
	w.order = slices.DeleteFunc(w.order, func(id EntityID) bool {
		_, gone := doomed[id]
		return gone
	})
}
