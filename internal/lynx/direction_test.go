package lynx

import "testing"

func TestDirectionTurns(t *testing.T) {
	for d := North; d <= East; d++ {
		if d.Back().Back() != d {
			t.Errorf("%v: back twice should be identity", d)
		}
		if d.Left().Right() != d {
			t.Errorf("%v: left then right should be identity", d)
		}
		if d.Left().Left() != d.Back() {
			t.Errorf("%v: two lefts should face back", d)
		}
	}
	if North.Left() != West || North.Right() != East || North.Back() != South {
		t.Errorf("north turns mismatch: %v %v %v",
			North.Left(), North.Right(), North.Back())
	}
}

func TestDirectionMaskRoundTrip(t *testing.T) {
	for d := North; d <= East; d++ {
		if got := directionFromMask(d.Mask()); got != d {
			t.Errorf("%v round trip mismatch: %v", d, got)
		}
	}
	if MaskNorth|MaskSouth != maskVertical || MaskWest|MaskEast != maskHorizontal {
		t.Errorf("axis masks mismatch")
	}
}

func TestNeighbor(t *testing.T) {
	cases := []struct {
		dir  Direction
		x, y int
	}{
		{North, 5, 4},
		{West, 4, 5},
		{South, 5, 6},
		{East, 6, 5},
	}
	for _, c := range cases {
		x, y := neighbor(5, 5, c.dir)
		if x != c.x || y != c.y {
			t.Errorf("%v neighbor mismatch: (%d,%d) vs (%d,%d)", c.dir, x, y, c.x, c.y)
		}
	}
}
