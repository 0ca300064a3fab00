package sim

import "math"

// Camera returns the top-left world point of a viewW x viewH viewport
// centered on the player's tank and clamped to the map. ok is false when
// the player or its tank no longer exists; callers keep their last origin.
func (w *World) Camera(playerID EntityID, viewW, viewH float64) (origin Vector, ok bool) {
	p, ok := w.Player(playerID)
	if !ok {
		return Vector{}, false
	}
	tank, ok := w.Tank(p.TankID)
	if !ok {
		return Vector{}, false
	}
	return CameraOrigin(tank.Position, viewW, viewH, w.rules.MapWidth, w.rules.MapHeight), true
}

// CameraOrigin centers a viewport on focus and clamps it to the map.
func CameraOrigin(focus Vector, viewW, viewH, mapW, mapH float64) Vector {
	return Vector{
		X: clampAxis(focus.X-viewW/2, mapW-viewW),
		Y: clampAxis(focus.Y-viewH/2, mapH-viewH),
	}
}

func clampAxis(v, hi float64) float64 {
	hi = math.Max(hi, 0)
	return math.Min(math.Max(v, 0), hi)
}
