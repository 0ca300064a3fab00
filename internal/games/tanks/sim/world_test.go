package sim_test

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

const tick = 100 * time.Millisecond

func newWorld() *sim.World {
	return sim.NewWorld(sim.DefaultRules())
}

func TestSpawnTankCreatesBarrel(t *testing.T) {
	w := newWorld()
	tank := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100), Rotation: -90, Color: "red"})

	if w.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2 (tank + barrel)", w.Len())
	}
	if tank.Rotation != 270 {
		t.Errorf("spawn rotation = %v, expected 270", tank.Rotation)
	}

	barrel, ok := w.Barrel(tank.BarrelID)
	if !ok {
		t.Fatal("barrel missing from table")
	}
	if barrel.TankID != tank.ID() {
		t.Errorf("barrel.TankID = %d, expected %d", barrel.TankID, tank.ID())
	}
	if barrel.Position != tank.Position || barrel.Rotation != tank.Rotation {
		t.Error("barrel should start centered on the hull with the same heading")
	}
	if tank.Health != sim.DefaultRules().TankHealth {
		t.Errorf("Health = %d, expected %d", tank.Health, sim.DefaultRules().TankHealth)
	}
}

func TestIDsAreUniqueAndOrdered(t *testing.T) {
	w := newWorld()
	a := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100)})
	b := w.SpawnTank(sim.TankSpec{Position: sim.Vec(300, 100)})
	p := w.AddPlayer(a.ID())

	expected := []sim.EntityID{a.ID(), a.BarrelID, b.ID(), b.BarrelID, p.ID()}
	var got []sim.EntityID
	w.Each(func(e sim.Entity) bool {
		got = append(got, e.ID())
		return true
	})

	if len(got) != len(expected) {
		t.Fatalf("Each visited %d entities, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Each order[%d] = %d, expected %d", i, got[i], expected[i])
		}
		if i > 0 && got[i] <= got[i-1] {
			t.Errorf("ids not increasing at %d", i)
		}
	}
}

func TestRemoveKeepsTankAndBarrelTogether(t *testing.T) {
	w := newWorld()
	a := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100)})
	b := w.SpawnTank(sim.TankSpec{Position: sim.Vec(300, 100)})

	w.Remove(a.ID())
	if _, ok := w.Barrel(a.BarrelID); ok {
		t.Error("removing a tank should remove its barrel")
	}

	w.Remove(b.BarrelID)
	if _, ok := w.Tank(b.ID()); ok {
		t.Error("removing a barrel should remove its tank")
	}

	if w.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", w.Len())
	}

	// Unknown and repeated ids are no-ops.
	w.Remove(a.ID(), 9999)
}

func TestLookupWrongKind(t *testing.T) {
	w := newWorld()
	a := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100)})

	if _, ok := w.Bullet(a.ID()); ok {
		t.Error("Bullet() should not return a tank")
	}
	if _, ok := w.Tank(a.BarrelID); ok {
		t.Error("Tank() should not return a barrel")
	}
	if _, ok := w.Get(12345); ok {
		t.Error("Get() of unknown id should report false")
	}
}

func TestResolveEmptyWorld(t *testing.T) {
	w := newWorld()
	res := w.Resolve()
	if len(res.Kills)+len(res.Pushes)+len(res.Expired)+len(res.Stopped) != 0 {
		t.Errorf("empty world produced events: %+v", res)
	}
	if shots := w.Integrate(tick); len(shots) != 0 {
		t.Errorf("empty world fired %d shots", len(shots))
	}
}

func TestCountByKind(t *testing.T) {
	w := newWorld()
	a := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100)})
	w.SpawnTank(sim.TankSpec{Position: sim.Vec(400, 100)})
	w.AddPlayer(a.ID())

	if n := w.Count(sim.KindTank); n != 2 {
		t.Errorf("Count(tank) = %d, expected 2", n)
	}
	if n := w.Count(sim.KindBarrel); n != 2 {
		t.Errorf("Count(barrel) = %d, expected 2", n)
	}
	if n := w.Count(sim.KindPlayer); n != 1 {
		t.Errorf("Count(player) = %d, expected 1", n)
	}
}

func TestCamera(t *testing.T) {
	tests := []struct {
		name     string
		focus    sim.Vector
		expected sim.Vector
	}{
		{"centered", sim.Vec(800, 480), sim.Vec(600, 380)},
		{"top-left clamp", sim.Vec(10, 10), sim.Vec(0, 0)},
		{"bottom-right clamp", sim.Vec(1590, 950), sim.Vec(1200, 760)},
		{"outside map clamps", sim.Vec(-500, 5000), sim.Vec(0, 760)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sim.CameraOrigin(tc.focus, 400, 200, 1600, 960)
			if got != tc.expected {
				t.Errorf("CameraOrigin(%v) = %v, expected %v", tc.focus, got, tc.expected)
			}
		})
	}

	if got := sim.CameraOrigin(sim.Vec(50, 50), 400, 200, 300, 100); got != sim.Vec(0, 0) {
		t.Errorf("map smaller than viewport: origin = %v, expected (0, 0)", got)
	}
}

func TestCameraFollowsPlayer(t *testing.T) {
	w := newWorld()
	tank := w.SpawnTank(sim.TankSpec{Position: sim.Vec(800, 480)})
	p := w.AddPlayer(tank.ID())

	origin, ok := w.Camera(p.ID(), 400, 200)
	if !ok || origin != sim.Vec(600, 380) {
		t.Errorf("Camera() = %v, %v; expected (600, 380), true", origin, ok)
	}

	w.Remove(tank.ID())
	if _, ok := w.Camera(p.ID(), 400, 200); ok {
		t.Error("Camera() should report false once the tank is gone")
	}
}

func TestKeySet(t *testing.T) {
	s := sim.Keys(sim.KeyFire, sim.KeyForward)
	if !s.Has(sim.KeyFire) || !s.Has(sim.KeyForward) || s.Has(sim.KeyBackward) {
		t.Errorf("Keys() = %v, unexpected membership", s)
	}
	if s.Without(sim.KeyFire).Has(sim.KeyFire) {
		t.Error("Without() did not remove key")
	}
	if got := s.String(); got != "forward,fire" {
		t.Errorf("String() = %q, expected %q", got, "forward,fire")
	}

	k, err := sim.ParseKey(" Aim-Left ")
	if err != nil || k != sim.KeyAimLeft {
		t.Errorf("ParseKey(aim-left) = %v, %v", k, err)
	}
	if _, err := sim.ParseKey("jump"); err == nil {
		t.Error("ParseKey(jump) should fail")
	}
}

func TestIntegrateRotationWraps(t *testing.T) {
	w := newWorld()
	tank := w.SpawnTank(sim.TankSpec{Position: sim.Vec(800, 480), Rotation: 10})
	p := w.AddPlayer(tank.ID())
	p.Keys = sim.Keys(sim.KeyRotateLeft)

	w.Step(tick) // 10 - 300*0.1 = -20 -> 340
	if math.Abs(tank.Rotation-340) > tol {
		t.Errorf("Rotation = %v, expected 340", tank.Rotation)
	}
}
