package sim

// Resolve runs the pairwise collision pass and then the boundary pass.
//
// Pairs are visited in creation order (i < j) over a snapshot of the table.
// A pair is skipped once either member has been removed earlier in the
// same pass.
func (w *World) Resolve() Resolution {
	var res Resolution
	ids := w.IDs()

	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, ok := w.entities[ids[i]]
			if !ok {
				break
			}
			b, ok := w.entities[ids[j]]
			if !ok {
				continue
			}
			w.resolvePair(a, b, &res)
		}
	}

	w.containBounds(&res)
	return res
}

func (w *World) resolvePair(a, b Entity, res *Resolution) {
	switch a := a.(type) {
	case *Tank:
		switch b := b.(type) {
		case *Tank:
			w.push(a, b, res)
		case *Bullet:
			w.hit(b, a, res)
		}
	case *Bullet:
		if t, ok := b.(*Tank); ok {
			w.hit(a, t, res)
		}
	}
	// Barrels and players never collide; bullets ignore each other.
}

func (w *World) hit(bullet *Bullet, tank *Tank, res *Resolution) {
	if bullet.TankID == tank.id {
		return
	}
	if _, ok := Collide(bullet.Body, tank.Body); !ok {
		return
	}

	tank.Health = 0
	w.Remove(tank.id, bullet.id)
	res.Kills = append(res.Kills, Kill{
		TankID:    tank.id,
		BarrelID:  tank.BarrelID,
		BulletID:  bullet.id,
		ShooterID: bullet.TankID,
	})
	w.logger.Debug("tank destroyed", "tank", tank.id, "bullet", bullet.id, "shooter", bullet.TankID)
}

// push moves only the first tank of the pair.
func (w *World) push(first, second *Tank, res *Resolution) {
	mtv, ok := Collide(first.Body, second.Body)
	if !ok {
		return
	}
	first.Position = add(first.Position, mtv)
	res.Pushes = append(res.Pushes, Push{TankID: first.id, OtherID: second.id, MTV: mtv})
}

func (w *World) containBounds(res *Resolution) {
	var expired []EntityID
	for _, id := range w.order {
		e := w.entities[id]
		body, ok := bodyOf(e)
		if !ok || w.rules.InBounds(body.Position) {
			continue
		}
		if _, isBullet := e.(*Bullet); isBullet {
			expired = append(expired, id)
			continue
		}
		if vel, ok := velocityOf(e); ok && vel.Speed != 0 {
			vel.Speed = 0
			res.Stopped = append(res.Stopped, id)
		}
	}
	if len(expired) > 0 {
		w.Remove(expired...)
		res.Expired = expired
	}
}
