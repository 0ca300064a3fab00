package tanks

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// EntityState is one entity in a Snapshot.
type EntityState struct {
	ID       uint64
	Kind     string
	X, Y     float64
	Rotation float64
	Speed    float64
}

// Snapshot contains the round state for determinism checks.
type Snapshot struct {
	Tick     uint64
	TimeNS   int64
	Score    int
	Kills    int
	Shots    int
	State    string
	Outcome  string
	Entities []EntityState
}

// Snapshot returns the current round state. Entities are in creation order.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:    g.world.Tick(),
		TimeNS:  int64(g.world.Now()),
		Score:   g.score,
		Kills:   g.kills,
		Shots:   g.shots,
		State:   g.state,
		Outcome: string(g.outcome),
	}

	g.world.Each(func(e sim.Entity) bool {
		body, ok := sim.BodyOf(e)
		if !ok {
			return true
		}
		es := EntityState{
			ID:       uint64(e.ID()),
			Kind:     e.Kind().String(),
			X:        body.Position.X,
			Y:        body.Position.Y,
			Rotation: body.Rotation,
		}
		switch e := e.(type) {
		case *sim.Tank:
			es.Speed = e.Velocity.Speed
		case *sim.Barrel:
			es.Speed = e.Velocity.Speed
		case *sim.Bullet:
			es.Speed = e.Velocity.Speed
		}
		snap.Entities = append(snap.Entities, es)
		return true
	})

	return snap
}

// Hash returns an FNV-1a hash of the snapshot. Floats are hashed by their
// bit patterns, so two runs match only if they are bit-identical.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte

	putU := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash writes never fail
	}
	putF := func(v float64) { putU(math.Float64bits(v)) }

	putU(snap.Tick)
	putU(uint64(snap.TimeNS))       //#nosec G115 -- hash computation
	putU(uint64(int64(snap.Score))) //#nosec G115 -- hash computation
	putU(uint64(int64(snap.Kills))) //#nosec G115 -- hash computation
	putU(uint64(int64(snap.Shots))) //#nosec G115 -- hash computation
	h.Write([]byte(snap.State))     //nolint:errcheck // hash writes never fail
	h.Write([]byte(snap.Outcome))   //nolint:errcheck // hash writes never fail

	for _, e := range snap.Entities {
		putU(e.ID)
		h.Write([]byte(e.Kind)) //nolint:errcheck // hash writes never fail
		putF(e.X)
		putF(e.Y)
		putF(e.Rotation)
		putF(e.Speed)
	}

	return h.Sum64()
}
