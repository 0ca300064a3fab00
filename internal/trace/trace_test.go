package trace

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

func duel(t *testing.T) (*sim.World, *sim.Tank, *sim.Tank) {
	t.Helper()
	w := sim.NewWorld(sim.DefaultRules())
	shooter := w.SpawnTank(sim.TankSpec{Position: sim.Vec(100, 100)})
	target := w.SpawnTank(sim.TankSpec{Position: sim.Vec(300, 100), Rotation: 180})
	w.AddPlayer(shooter.ID()).Keys = sim.Keys(sim.KeyFire)
	return w, shooter, target
}

func TestRowsSkipPlayers(t *testing.T) {
	w, shooter, _ := duel(t)

	rows := Rows(w)
	// Two tanks and two barrels; the player has no body.
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	if rows[0].ID != uint64(shooter.ID()) || rows[0].Kind != sim.KindTank.String() {
		t.Errorf("first row = %+v, want the shooter tank", rows[0])
	}
	if rows[1].Kind != sim.KindBarrel.String() {
		t.Errorf("second row kind = %q, want barrel", rows[1].Kind)
	}
}

func TestRecorderStreams(t *testing.T) {
	w, shooter, target := duel(t)
	var rowsBuf, eventsBuf bytes.Buffer
	rec := NewRecorder(&rowsBuf, &eventsBuf)

	for range 4 {
		res := w.Step(100 * time.Millisecond)
		if err := rec.Capture(w, res); err != nil {
			t.Fatalf("Capture() failed: %v", err)
		}
	}

	// Header written once.
	if n := strings.Count(rowsBuf.String(), "tick,time_ms,id,kind"); n != 1 {
		t.Errorf("rows header written %d times", n)
	}
	if n := strings.Count(eventsBuf.String(), "tick,time_ms,type"); n != 1 {
		t.Errorf("events header written %d times", n)
	}

	var rows []Row
	if err := gocsv.UnmarshalBytes(rowsBuf.Bytes(), &rows); err != nil {
		t.Fatalf("reading rows back: %v", err)
	}
	nRows, nEvents := rec.Counts()
	if len(rows) != nRows {
		t.Errorf("read %d rows, recorder counted %d", len(rows), nRows)
	}
	if rows[0].Tick != 1 || rows[0].TimeMS != 100 {
		t.Errorf("first row = %+v, want tick 1 at 100ms", rows[0])
	}

	var events []Event
	if err := gocsv.UnmarshalBytes(eventsBuf.Bytes(), &events); err != nil {
		t.Fatalf("reading events back: %v", err)
	}
	if len(events) != nEvents {
		t.Errorf("read %d events, recorder counted %d", len(events), nEvents)
	}

	var shot, kill *Event
	for i := range events {
		switch events[i].Type {
		case EventShot:
			shot = &events[i]
		case EventKill:
			kill = &events[i]
		}
	}
	if shot == nil || shot.Tick != 1 || shot.OtherID != uint64(shooter.ID()) || shot.X != 150 {
		t.Errorf("shot event = %+v", shot)
	}
	// 60 units per tick from x=150 reaches the target hull on tick 3.
	if kill == nil || kill.Tick != 3 || kill.ID != uint64(target.ID()) || kill.OtherID != uint64(shooter.ID()) {
		t.Errorf("kill event = %+v", kill)
	}
}

func TestRecorderNilStreams(t *testing.T) {
	w, _, _ := duel(t)
	rec := NewRecorder(nil, nil)

	res := w.Step(100 * time.Millisecond)
	if err := rec.Capture(w, res); err != nil {
		t.Fatalf("Capture() failed: %v", err)
	}
	if r, e := rec.Counts(); r != 0 || e != 0 {
		t.Errorf("Counts() = %d, %d, want 0, 0", r, e)
	}
}

func TestEventsOrder(t *testing.T) {
	res := sim.StepResult{
		Tick:  7,
		Time:  700 * time.Millisecond,
		Shots: []sim.Shot{{BulletID: 9, TankID: 1}},
		Resolution: sim.Resolution{
			Kills:   []sim.Kill{{TankID: 3, ShooterID: 1}},
			Pushes:  []sim.Push{{TankID: 1, OtherID: 3, MTV: sim.Vec(-2, 0)}},
			Expired: []sim.EntityID{5},
			Stopped: []sim.EntityID{6},
		},
	}

	events := Events(res)
	want := []string{EventShot, EventKill, EventPush, EventExpired, EventStopped}
	if len(events) != len(want) {
		t.Fatalf("got %d events, want %d", len(events), len(want))
	}
	for i, typ := range want {
		if events[i].Type != typ {
			t.Errorf("events[%d].Type = %q, want %q", i, events[i].Type, typ)
		}
		if events[i].Tick != 7 || events[i].TimeMS != 700 {
			t.Errorf("events[%d] stamped %d/%v", i, events[i].Tick, events[i].TimeMS)
		}
	}
	if events[2].X != -2 {
		t.Errorf("push MTV x = %v, want -2", events[2].X)
	}
}
