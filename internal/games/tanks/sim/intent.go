package sim

import (
	"fmt"
	"strings"
)

// Key is a player control.
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyRotateLeft
	KeyRotateRight
	KeyAimLeft
	KeyAimRight
	KeyFire
	numKeys
)

var keyNames = [numKeys]string{
	KeyForward:     "forward",
	KeyBackward:    "backward",
	KeyRotateLeft:  "left",
	KeyRotateRight: "right",
	KeyAimLeft:     "aim-left",
	KeyAimRight:    "aim-right",
	KeyFire:        "fire",
}

func (k Key) String() string {
	if k < numKeys {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// ParseKey parses a key name as printed by Key.String.
func ParseKey(name string) (Key, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range keyNames {
		if n == name {
			return Key(k), nil
		}
	}
	return 0, fmt.Errorf("sim: unknown key %q", name)
}

// KeySet is the set of keys held during a tick.
type KeySet uint8

// Keys builds a KeySet.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool { return s&(1<<k) != 0 }

// With returns s plus k.
func (s KeySet) With(k Key) KeySet { return s | 1<<k }

// Without returns s minus k.
func (s KeySet) Without(k Key) KeySet { return s &^ (1 << k) }

// String lists held keys in declaration order, comma separated.
func (s KeySet) String() string {
	var names []string
	for k := Key(0); k < numKeys; k++ {
		if s.Has(k) {
			names = append(names, k.String())
		}
	}
	return strings.Join(names, ",")
}

// ApplyInput turns every player's held keys into velocities and a fire
// intent on the controlled tank and its barrel. Players whose tank is gone
// are skipped.
func (w *World) ApplyInput() {
	for _, id := range w.order {
		p, ok := w.entities[id].(*Player)
		if !ok {
			continue
		}
		tank, ok := w.Tank(p.TankID)
		if !ok {
			continue
		}
		w.steer(tank, p.Keys)
	}
}

func (w *World) steer(tank *Tank, keys KeySet) {
	r := w.rules

	switch {
	case keys.Has(KeyRotateLeft):
		tank.RotationalVelocity = -r.RotationSpeed
	case keys.Has(KeyRotateRight):
		tank.RotationalVelocity = r.RotationSpeed
	default:
		tank.RotationalVelocity = 0
	}

	tank.Velocity.Angle = tank.Rotation
	switch {
	case keys.Has(KeyForward):
		tank.Velocity.Speed = r.TankSpeed
	case keys.Has(KeyBackward):
		tank.Velocity.Speed = -r.TankSpeed
	default:
		tank.Velocity.Speed = 0
	}

	tank.Firing = keys.Has(KeyFire) &&
		(!tank.HasFired || w.clock-tank.LastFired > r.Reload)

	barrel, ok := w.Barrel(tank.BarrelID)
	if !ok {
		return
	}
	barrel.RotationalVelocity = tank.RotationalVelocity
	switch {
	case keys.Has(KeyAimLeft):
		barrel.RotationalVelocity -= r.AimSpeed
	case keys.Has(KeyAimRight):
		barrel.RotationalVelocity += r.AimSpeed
	}
	barrel.Velocity = tank.Velocity
}
