package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
)

func TestParseHold(t *testing.T) {
	tests := []struct {
		in      string
		want    sim.KeySet
		wantErr bool
	}{
		{"", 0, false},
		{"fire", sim.Keys(sim.KeyFire), false},
		{"forward, aim-left ,fire", sim.Keys(sim.KeyForward, sim.KeyAimLeft, sim.KeyFire), false},
		{"forward,,left", sim.Keys(sim.KeyForward, sim.KeyRotateLeft), false},
		{"jump", 0, true},
	}

	for _, tc := range tests {
		got, err := parseHold(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("parseHold(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("parseHold(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestEventsPath(t *testing.T) {
	if got := eventsPath("out/run.csv"); got != "out/run.events.csv" {
		t.Errorf("eventsPath = %q", got)
	}
	if got := eventsPath("trace"); got != "trace.events.csv" {
		t.Errorf("eventsPath = %q", got)
	}
}

func TestResolveGameID(t *testing.T) {
	for _, arg := range []string{"training", "tanks-training"} {
		id, ok := resolveGameID(arg)
		if !ok || id != "tanks-training" {
			t.Errorf("resolveGameID(%q) = %q, %v", arg, id, ok)
		}
	}
	if _, ok := resolveGameID("pong"); ok {
		t.Error("pong should not resolve")
	}
}

func TestSimArena(t *testing.T) {
	flagSimArenaFile = ""
	flagSimArena = "tanks-crossfire"
	a, err := simArena()
	if err != nil || a.ID != "crossfire" {
		t.Fatalf("simArena() = %q, %v", a.ID, err)
	}

	flagSimArena = "nowhere"
	if _, err := simArena(); err == nil {
		t.Error("unknown arena should fail")
	}
}

func TestOpenTrace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	rec, closeTrace, err := openTrace(path)
	if err != nil {
		t.Fatalf("openTrace: %v", err)
	}
	if rec == nil {
		t.Fatal("recorder is nil")
	}
	if err := closeTrace(); err != nil {
		t.Errorf("close: %v", err)
	}
	for _, p := range []string{path, eventsPath(path)} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("%s not created: %v", p, err)
		}
	}
}

func TestOpenTraceEventsFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.csv")
	// A directory where the events file should go makes its create fail.
	if err := os.Mkdir(eventsPath(path), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, _, err := openTrace(path); err == nil {
		t.Fatal("openTrace should fail when the events file cannot be created")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("rows file should be removed, stat err = %v", err)
	}
}
