package sim

import "time"

// Integrate advances every entity by dt: positions first, then rotations,
// then bullets for tanks with a fire intent. Bullets are spawned after the
// move so they are not advanced in the tick that creates them.
func (w *World) Integrate(dt time.Duration) []Shot {
	secs := dt.Seconds()

	for _, id := range w.order {
		body, ok := bodyOf(w.entities[id])
		if !ok {
			continue
		}
		vel, _ := velocityOf(w.entities[id])
		if vel.Speed != 0 {
			body.Position = add(body.Position, scale(vel.Speed*secs, Direction(vel.Angle)))
		}
	}

	for _, id := range w.order {
		switch e := w.entities[id].(type) {
		case *Tank:
			e.Rotation = NormalizeRotation(e.Rotation + e.RotationalVelocity*secs)
		case *Barrel:
			e.Rotation = NormalizeRotation(e.Rotation + e.RotationalVelocity*secs)
		}
	}

	if w.rules.AnchorBarrels {
		w.anchorBarrels()
	}

	var shots []Shot
	for _, id := range w.order {
		tank, ok := w.entities[id].(*Tank)
		if !ok || !tank.Firing {
			continue
		}
		tank.Firing = false

		barrel, ok := w.Barrel(tank.BarrelID)
		if !ok {
			continue
		}
		tip := add(barrel.Position, scale(barrel.Size.Height(), Direction(barrel.Rotation)))
		bullet := w.spawnBullet(tank, tip, barrel.Rotation)
		tank.LastFired = w.clock
		tank.HasFired = true

		shots = append(shots, Shot{
			BulletID: bullet.id,
			TankID:   tank.id,
			Position: tip,
			Angle:    barrel.Rotation,
		})
		w.logger.Debug("bullet fired", "tank", tank.id, "bullet", bullet.id, "angle", barrel.Rotation)
	}
	return shots
}

func (w *World) anchorBarrels() {
	for _, id := range w.order {
		tank, ok := w.entities[id].(*Tank)
		if !ok {
			continue
		}
		if barrel, ok := w.Barrel(tank.BarrelID); ok {
			barrel.Position = tank.Position
		}
	}
}
