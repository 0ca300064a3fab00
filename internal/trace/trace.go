// Package trace writes per-tick CSV traces of a running world: one row per
// entity per tick, plus an event log of shots, kills, pushes and entities
// leaving the map.
package trace

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// Row is one entity at the end of a tick.
type Row struct {
	Tick     uint64  `csv:"tick"`
	TimeMS   float64 `csv:"time_ms"`
	ID       uint64  `csv:"id"`
	Kind     string  `csv:"kind"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	Rotation float64 `csv:"rotation"`
	Speed    float64 `csv:"speed"`
}

// Event types
const (
	EventShot    = "shot"
	EventKill    = "kill"
	EventPush    = "push"
	EventExpired = "expired"
	EventStopped = "stopped"
)

// Event is something the kernel reported for a tick.
type Event struct {
	Tick    uint64  `csv:"tick"`
	TimeMS  float64 `csv:"time_ms"`
	Type    string  `csv:"type"`
	ID      uint64  `csv:"id"`       // bullet, killed tank, pushed tank or removed entity
	OtherID uint64  `csv:"other_id"` // shooter or the tank pushed against
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
}

// Recorder streams rows and events as CSV. Headers are written with the
// first record of each stream. A nil writer disables that stream.
type Recorder struct {
	rows   io.Writer
	events io.Writer

	rowsHeaderWritten   bool
	eventsHeaderWritten bool

	rowCount   int
	eventCount int
}

// NewRecorder creates a recorder writing to the given streams.
func NewRecorder(rows, events io.Writer) *Recorder {
	return &Recorder{rows: rows, events: events}
}

// Capture records the world after a Step and the events of that step.
func (r *Recorder) Capture(w *sim.World, res sim.StepResult) error {
	if err := r.WriteRows(Rows(w)); err != nil {
		return err
	}
	return r.WriteEvents(Events(res))
}

// WriteRows appends entity rows.
func (r *Recorder) WriteRows(rows []Row) error {
	if r.rows == nil || len(rows) == 0 {
		return nil
	}
	if err := marshal(rows, r.rows, &r.rowsHeaderWritten); err != nil {
		return fmt.Errorf("trace: writing rows: %w", err)
	}
	r.rowCount += len(rows)
	return nil
}

// WriteEvents appends events.
func (r *Recorder) WriteEvents(events []Event) error {
	if r.events == nil || len(events) == 0 {
		return nil
	}
	if err := marshal(events, r.events, &r.eventsHeaderWritten); err != nil {
		return fmt.Errorf("trace: writing events: %w", err)
	}
	r.eventCount += len(events)
	return nil
}

// Counts returns how many rows and events were written.
func (r *Recorder) Counts() (rows, events int) {
	return r.rowCount, r.eventCount
}

func marshal(records any, w io.Writer, headerWritten *bool) error {
	if !*headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, w); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, w)
}

// Rows snapshots every entity with a body, in creation order.
func Rows(w *sim.World) []Row {
	tick, ms := w.Tick(), millis(w.Now())
	rows := make([]Row, 0, w.Len())

	w.Each(func(e sim.Entity) bool {
		body, ok := sim.BodyOf(e)
		if !ok {
			return true
		}
		row := Row{
			Tick:     tick,
			TimeMS:   ms,
			ID:       uint64(e.ID()),
			Kind:     e.Kind().String(),
			X:        body.Position.X,
			Y:        body.Position.Y,
			Rotation: body.Rotation,
		}
		switch e := e.(type) {
		case *sim.Tank:
			row.Speed = e.Velocity.Speed
		case *sim.Barrel:
			row.Speed = e.Velocity.Speed
		case *sim.Bullet:
			row.Speed = e.Velocity.Speed
		}
		rows = append(rows, row)
		return true
	})
	return rows
}

// Events flattens a step result, in kernel order: shots, kills, pushes,
// then boundary removals.
func Events(res sim.StepResult) []Event {
	ms := millis(res.Time)
	var out []Event

	for _, s := range res.Shots {
		out = append(out, Event{
			Tick: res.Tick, TimeMS: ms, Type: EventShot,
			ID: uint64(s.BulletID), OtherID: uint64(s.TankID),
			X: s.Position.X, Y: s.Position.Y,
		})
	}
	for _, k := range res.Kills {
		out = append(out, Event{
			Tick: res.Tick, TimeMS: ms, Type: EventKill,
			ID: uint64(k.TankID), OtherID: uint64(k.ShooterID),
		})
	}
	for _, p := range res.Pushes {
		out = append(out, Event{
			Tick: res.Tick, TimeMS: ms, Type: EventPush,
			ID: uint64(p.TankID), OtherID: uint64(p.OtherID),
			X: p.MTV.X, Y: p.MTV.Y,
		})
	}
	for _, id := range res.Expired {
		out = append(out, Event{Tick: res.Tick, TimeMS: ms, Type: EventExpired, ID: uint64(id)})
	}
	for _, id := range res.Stopped {
		out = append(out, Event{Tick: res.Tick, TimeMS: ms, Type: EventStopped, ID: uint64(id)})
	}
	return out
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
