package registry

import (
	"testing"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub" }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register(GameInfo{ID: "zz-stub-b", Title: "B"}, func() Game { return &stubGame{id: "zz-stub-b"} })
	Register(GameInfo{ID: "zz-stub-a"}, func() Game { return &stubGame{id: "zz-stub-a"} })

	if !Exists("zz-stub-a") {
		t.Fatal("registered game should exist")
	}
	info, ok := Lookup("zz-stub-a")
	if !ok || info.Title != "zz-stub-a" {
		t.Errorf("Lookup() = %+v, %v; empty title should default to id", info, ok)
	}

	g, err := Create("zz-stub-b")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz-stub-b" {
		t.Errorf("Create() returned %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	list := List()
	idxA, idxB := -1, -1
	for i, gi := range list {
		switch gi.ID {
		case "zz-stub-a":
			idxA = i
		case "zz-stub-b":
			idxB = i
		}
	}
	if idxA < 0 || idxB < 0 || idxA > idxB {
		t.Errorf("List() not sorted by id: %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "zz-dup"}, func() Game { return &stubGame{id: "zz-dup"} })
}
