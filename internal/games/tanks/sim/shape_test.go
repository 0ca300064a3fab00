package sim

import "testing"

func TestCornersWinding(t *testing.T) {
	b := Body{Position: Vec(0, 0), Size: NewDimension(10, 20)}
	expected := [4]Vector{Vec(-5, -10), Vec(-5, 10), Vec(5, 10), Vec(5, -10)}

	got := b.Corners()
	for i := range expected {
		if !nearVec(got[i], expected[i]) {
			t.Errorf("corner %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestAxesOrder(t *testing.T) {
	b := Body{Position: Vec(0, 0), Size: NewDimension(10, 20)}
	expected := []Vector{Vec(1, 0), Vec(0, -1), Vec(-1, 0), Vec(0, 1)}

	got := Axes(b.Corners())
	if len(got) != len(expected) {
		t.Fatalf("got %d axes, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if !nearVec(got[i], expected[i]) {
			t.Errorf("axis %d = %v, expected %v", i, got[i], expected[i])
		}
	}
}

func TestProjectAndIntervalDistance(t *testing.T) {
	a := Body{Position: Vec(0, 0), Size: NewDimension(10, 10)}
	b := Body{Position: Vec(30, 0), Size: NewDimension(10, 10)}
	axis := Vec(1, 0)

	pa, pb := Project(a.Corners(), axis), Project(b.Corners(), axis)
	if pa != (Projection{Min: -5, Max: 5}) {
		t.Errorf("Project(a) = %+v, expected [-5, 5]", pa)
	}
	if pb != (Projection{Min: 25, Max: 35}) {
		t.Errorf("Project(b) = %+v, expected [25, 35]", pb)
	}

	if d := IntervalDistance(pa, pb); d != 20 {
		t.Errorf("IntervalDistance(a, b) = %v, expected 20", d)
	}
	if d := IntervalDistance(pb, pa); d != 20 {
		t.Errorf("IntervalDistance(b, a) = %v, expected 20", d)
	}
	if d := IntervalDistance(Projection{0, 10}, Projection{4, 12}); d != -6 {
		t.Errorf("overlapping IntervalDistance = %v, expected -6", d)
	}
}

func TestContainsMatchesCorners(t *testing.T) {
	for _, rot := range []float64{0, 30, 90, 145, 270, 359} {
		b := Body{Position: Vec(100, 80), Size: NewDimension(40, 20), Rotation: rot}
		if !b.Contains(b.Position) {
			t.Errorf("rot %v: center not contained", rot)
		}
		for i, c := range b.Corners() {
			d := sub(c, b.Position)
			inside := add(b.Position, scale(0.99, d))
			outside := add(b.Position, scale(1.01, d))
			if !b.Contains(inside) {
				t.Errorf("rot %v: point just inside corner %d not contained", rot, i)
			}
			if b.Contains(outside) {
				t.Errorf("rot %v: point just outside corner %d contained", rot, i)
			}
		}
	}
}

func TestContainsRotated(t *testing.T) {
	b := Body{Position: Vec(100, 100), Size: NewDimension(40, 20), Rotation: 90}

	if !b.Contains(Vec(100, 118)) {
		t.Error("long axis should point along y after a 90 degree turn")
	}
	if b.Contains(Vec(118, 100)) {
		t.Error("short axis should point along x after a 90 degree turn")
	}
}

func TestBounds(t *testing.T) {
	b := Body{Position: Vec(50, 50), Size: NewDimension(40, 20), Rotation: 90}
	lo, hi := b.Bounds()
	if !nearVec(lo, Vec(40, 30)) || !nearVec(hi, Vec(60, 70)) {
		t.Errorf("Bounds() = %v..%v, expected (40,30)..(60,70)", lo, hi)
	}
}
