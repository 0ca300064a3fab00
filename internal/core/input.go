package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone     Action = iota
	ActionUp              // W, Up arrow - drive forward / menu up
	ActionDown            // S, Down arrow - reverse / menu down
	ActionLeft            // A, Left arrow - turn hull left
	ActionRight           // D, Right arrow - turn hull right
	ActionAimLeft         // J - turn barrel left
	ActionAimRight        // L - turn barrel right
	ActionFire            // Space - fire
	ActionConfirm         // Enter - confirm selection in menu
	ActionBack            // B, Escape - go back to menu
	ActionRestart         // R key - restart game after game over
	ActionQuit            // Q, Ctrl+C - exit game/session
	ActionPause           // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionAimLeft:
		return "AimLeft"
	case ActionAimRight:
		return "AimRight"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Continuous reports whether the action is meant to be held down
// (movement, aiming, firing) rather than triggered once.
func (a Action) Continuous() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight,
		ActionAimLeft, ActionAimRight, ActionFire:
		return true
	}
	return false
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered or held during this frame.
type InputFrame struct {
	// Actions maps action types to whether they are active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action is active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// Merge returns a new frame with the actions of both frames.
func (f InputFrame) Merge(other InputFrame) InputFrame {
	merged := f.Clone()
	for k, v := range other.Actions {
		if v {
			merged.Actions[k] = true
		}
	}
	return merged
}
