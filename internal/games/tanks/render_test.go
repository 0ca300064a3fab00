package tanks

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

func TestRenderHUDAndWorld(t *testing.T) {
	g := newTestGame(t, duelArena)
	screen := core.NewScreen(80, 24)

	g.Render(screen)

	hud := screen.Row(0)
	for _, want := range []string{"Score: 0", "Targets: 1", "READY", "Time: 0:00"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}

	out := screen.String()
	if !strings.ContainsRune(out, HullChar) {
		t.Error("no hull cells drawn")
	}
	if !strings.ContainsRune(out, BarrelChar) {
		t.Error("no barrel cells drawn")
	}
	if screen.Get(0, 1) != '┌' {
		t.Errorf("top-left border = %q, want ┌", screen.Get(0, 1))
	}
}

func TestRenderBulletAndReload(t *testing.T) {
	g := newTestGame(t, duelArena)
	g.Step(frame(core.ActionFire))
	g.Step(frame())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.ContainsRune(screen.String(), BulletChar) {
		t.Error("bullet not drawn")
	}
	if !strings.Contains(screen.Row(0), "reloading") {
		t.Errorf("HUD %q, want reloading", screen.Row(0))
	}
}

func TestRenderColorsFromArena(t *testing.T) {
	g := newTestGame(t, duelArena)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	// Target at x=400 is red; the player has no color and falls back to green.
	var red, green bool
	for y := range screen.Height() {
		for x := range screen.Width() {
			c := screen.GetCell(x, y)
			if c.Rune != HullChar {
				continue
			}
			red = red || c.Color == core.ColorBrightRed
			green = green || c.Color == core.ColorGreen
		}
	}
	if !red || !green {
		t.Errorf("hull colors: red=%v green=%v, want both", red, green)
	}
}

func TestRenderOffMapShading(t *testing.T) {
	g := newTestGame(t, `
id: tiny
width: 200
height: 100
player: {x: 100, y: 50}
targets:
  - {x: 180, y: 50}
`)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if !strings.ContainsRune(screen.String(), OffMapChar) {
		t.Error("cells beyond a small map should be shaded")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t, duelArena)
	screen := core.NewScreen(20, 6)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}
}

func TestRenderGameOverOverlay(t *testing.T) {
	g := newTestGame(t, duelArena)
	runUntilOver(g, frame(core.ActionFire), 120)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "ARENA CLEARED") {
		t.Error("expected cleared overlay")
	}
}

func TestFormatClock(t *testing.T) {
	tests := map[string]int64{"0:00": 0, "0:59": 59, "1:30": 90, "12:05": 725}
	for want, secs := range tests {
		if got := formatClock(timeSeconds(secs)); got != want {
			t.Errorf("formatClock(%ds) = %q, want %q", secs, got, want)
		}
	}
}

func timeSeconds(s int64) time.Duration { return time.Duration(s) * time.Second }
