package tui

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// DefaultHold is how long a continuous action stays held after its last
// key press. It must outlast the terminal's key repeat delay.
const DefaultHold = 150 * time.Millisecond

// HeldKeys turns terminal key presses into held actions.
//
// Terminals report presses and auto-repeats but never releases, so a
// continuous action (driving, aiming, firing) counts as held until hold has
// passed since its last press. Other actions are one-shot and are delivered
// in the next frame only. Pressing a direction releases its opposite.
type HeldKeys struct {
	hold  time.Duration
	last  map[core.Action]time.Time
	edges core.InputFrame
}

// NewHeldKeys creates a tracker. A non-positive hold uses DefaultHold.
func NewHeldKeys(hold time.Duration) *HeldKeys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HeldKeys{
		hold:  hold,
		last:  make(map[core.Action]time.Time),
		edges: core.NewInputFrame(),
	}
}

var opposites = map[core.Action]core.Action{
	core.ActionUp:       core.ActionDown,
	core.ActionDown:     core.ActionUp,
	core.ActionLeft:     core.ActionRight,
	core.ActionRight:    core.ActionLeft,
	core.ActionAimLeft:  core.ActionAimRight,
	core.ActionAimRight: core.ActionAimLeft,
}

// Press records a key press at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !a.Continuous() {
		h.edges.Set(a)
		return
	}
	h.last[a] = now
	if opp, ok := opposites[a]; ok {
		delete(h.last, opp)
	}
}

// Frame returns the actions active at now and consumes pending one-shot
// actions. Expired holds are forgotten.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := h.edges.Clone()
	h.edges.Clear()

	for a, t := range h.last {
		if now.Sub(t) < h.hold {
			frame.Set(a)
		} else {
			delete(h.last, a)
		}
	}
	return frame
}

// Reset drops every held and pending action.
func (h *HeldKeys) Reset() {
	clear(h.last)
	h.edges.Clear()
}
