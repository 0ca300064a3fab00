package tanks

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

// Visual characters for rendering
const (
	HullChar   = '█'
	BarrelChar = '▓'
	BulletChar = '•'
	OffMapChar = '░'
)

// Layout: one HUD row, then the viewport inside a border.
const (
	hudRows    = 1
	minScreenW = 24
	minScreenH = 8
)

// Render draws the HUD, the viewport border and the world under the camera.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if dst.Width() < minScreenW || dst.Height() < minScreenH {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	g.renderHUD(dst)

	frame := core.NewRect(0, hudRows, dst.Width(), dst.Height()-hudRows)
	dst.DrawBox(frame, core.ColorGray)
	view := core.NewRect(frame.X+1, frame.Y+1, frame.W-2, frame.H-2)

	cw, ch := g.cfg.Render.CellWidth, g.cfg.Render.CellHeight
	if origin, ok := g.world.Camera(g.playerID, float64(view.W)*cw, float64(view.H)*ch); ok {
		g.camera = origin
	}

	g.renderMap(dst, view)
	g.renderEntities(dst, view)
	g.renderOverlay(dst)
}

// cellCenter returns the world point sampled for a viewport cell.
func (g *Game) cellCenter(view core.Rect, x, y int) sim.Vector {
	return sim.Vec(
		g.camera.X+(float64(x-view.X)+0.5)*g.cfg.Render.CellWidth,
		g.camera.Y+(float64(y-view.Y)+0.5)*g.cfg.Render.CellHeight,
	)
}

// worldToCell maps a world point to a screen cell.
func (g *Game) worldToCell(view core.Rect, p sim.Vector) (int, int) {
	x := view.X + int(math.Floor((p.X-g.camera.X)/g.cfg.Render.CellWidth))
	y := view.Y + int(math.Floor((p.Y-g.camera.Y)/g.cfg.Render.CellHeight))
	return x, y
}

// renderMap shades cells that fall outside the map, visible when the map is
// smaller than the viewport.
func (g *Game) renderMap(dst *core.Screen, view core.Rect) {
	rules := g.world.Rules()
	for y := view.Y; y < view.Bottom(); y++ {
		for x := view.X; x < view.Right(); x++ {
			if !rules.InBounds(g.cellCenter(view, x, y)) {
				dst.SetColored(x, y, OffMapChar, core.ColorGray)
			}
		}
	}
}

// renderEntities draws hulls, then barrels, then bullets, so bullets stay
// visible on top.
func (g *Game) renderEntities(dst *core.Screen, view core.Rect) {
	for _, kind := range []sim.Kind{sim.KindTank, sim.KindBarrel, sim.KindBullet} {
		g.world.Each(func(e sim.Entity) bool {
			if e.Kind() != kind {
				return true
			}
			body, _ := sim.BodyOf(e)
			if b, ok := e.(*sim.Barrel); ok {
				body = cannon(b)
			}
			glyph, color := glyphFor(e)
			g.fillBody(dst, view, body, glyph, color)
			return true
		})
	}
}

// cannon is the drawn shape of a barrel: Height long along the heading,
// Width thick, running from the hull center to the muzzle.
func cannon(b *sim.Barrel) sim.Body {
	length := b.Size.Height()
	return sim.Body{
		Position: r2.Add(b.Position, r2.Scale(length/2, sim.Direction(b.Rotation))),
		Size:     sim.NewDimension(length, b.Size.Width()),
		Rotation: b.Rotation,
	}
}

func glyphFor(e sim.Entity) (rune, core.Color) {
	switch e := e.(type) {
	case *sim.Tank:
		return HullChar, colorOr(e.Color, core.ColorGreen)
	case *sim.Barrel:
		return BarrelChar, colorOr(e.Color, core.ColorGreen)
	default:
		return BulletChar, core.ColorBrightYellow
	}
}

func colorOr(name string, fallback core.Color) core.Color {
	if c := core.ParseColor(name); c != core.ColorDefault {
		return c
	}
	return fallback
}

// fillBody marks every viewport cell whose center lies inside the body.
// A body smaller than a cell still gets the cell under its center.
func (g *Game) fillBody(dst *core.Screen, view core.Rect, body sim.Body, glyph rune, color core.Color) {
	lo, hi := body.Bounds()
	x0, y0 := g.worldToCell(view, lo)
	x1, y1 := g.worldToCell(view, hi)
	x0, y0 = max(x0, view.X), max(y0, view.Y)
	x1, y1 = min(x1, view.Right()-1), min(y1, view.Bottom()-1)

	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if body.Contains(g.cellCenter(view, x, y)) {
				dst.SetColored(x, y, glyph, color)
				drawn = true
			}
		}
	}

	if !drawn {
		x, y := g.worldToCell(view, body.Position)
		if view.Contains(x, y) {
			dst.SetColored(x, y, glyph, color)
		}
	}
}

// renderHUD draws score, targets left, reload state and the clock.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Targets: %d", len(g.targets)))

	right := g.clockText()
	if r := g.reloadText(); r != "" {
		right = r + "  " + right
	}
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)
}

func (g *Game) reloadText() string {
	tank, ok := g.world.Tank(g.playerTank)
	if !ok {
		return ""
	}
	if !tank.HasFired || g.world.Now()-tank.LastFired > g.world.Rules().Reload {
		return "READY"
	}
	return "reloading"
}

func (g *Game) clockText() string {
	now := g.world.Now()
	if g.timeLimit <= 0 {
		return "Time: " + formatClock(now)
	}
	return "Left: " + formatClock(max(g.timeLimit-now, 0))
}

func formatClock(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	centerY := dst.Height() / 2

	switch g.state {
	case StatePaused:
		dst.DrawTextCentered(centerY, "PAUSED")
		dst.DrawTextCentered(centerY+1, "Press P to resume")

	case StateGameOver:
		var title string
		switch g.outcome {
		case OutcomeCleared:
			title = "ARENA CLEARED"
		case OutcomeTimeout:
			title = "TIME UP"
		default:
			title = "TANK DESTROYED"
		}
		dst.DrawTextCentered(centerY-1, title)
		dst.DrawTextCentered(centerY, fmt.Sprintf("Score: %d  Kills: %d  Shots: %d", g.score, g.kills, g.shots))
		dst.DrawTextCentered(centerY+2, "R restart, B menu, Q quit")
	}
}
