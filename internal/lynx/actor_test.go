package lynx

import "testing"

func TestActorString(t *testing.T) {
	cases := []struct {
		actor Actor
		want  string
	}{
		{MakeActor(EntityChip, South), "chip (south)"},
		{MakeActor(EntityBlockGhost, North), "block_ghost (north)"},
		{MakeActor(EntityTankReversed, West), "tank_reversed (west)"},
		{MakeActor(EntityTeeth, East), "teeth (east)"},
		{ActorNone, "none (north)"},
		// The animation marker decodes as entity none facing west.
		{ActorAnimation, "none (west)"},
	}
	for _, c := range cases {
		if got := c.actor.String(); got != c.want {
			t.Errorf("actor %#x mismatch: %q vs %q", uint8(c.actor), got, c.want)
		}
	}
}

func TestEntityClasses(t *testing.T) {
	if !EntityTank.IsTank() || !EntityTankReversed.IsTank() || EntityTeeth.IsTank() {
		t.Errorf("tank predicate mismatch")
	}
	if EntityTank.ReverseTank() != EntityTankReversed ||
		EntityTankReversed.ReverseTank() != EntityTank {
		t.Errorf("tank reversal mismatch")
	}
	if !EntityBlock.IsBlock() || !EntityBlockGhost.IsBlock() || EntityBug.IsBlock() {
		t.Errorf("block predicate mismatch")
	}
	// Blocks count as monster-or-block but are not monsters.
	if !EntityBlock.IsMonsterOrBlock() || EntityBlock.IsMonster() {
		t.Errorf("block monster classification mismatch")
	}
	if !EntityBug.IsMonster() || EntityChip.IsMonster() {
		t.Errorf("monster predicate mismatch")
	}
	// Ghost blocks start off the actor list and only join when pushed.
	if EntityBlockGhost.OnActorList() || !EntityBlock.OnActorList() {
		t.Errorf("actor list membership mismatch")
	}
	if EntityChip.OnActorList() {
		t.Errorf("the player joins the list through its own scan")
	}
}

func TestActorDirectionRoundTrip(t *testing.T) {
	a := MakeActor(EntityGlider, South)
	if a.Entity() != EntityGlider || a.Direction() != South {
		t.Fatalf("decode mismatch: %v %v", a.Entity(), a.Direction())
	}
	turned := a.InDirection(East)
	if turned.Entity() != EntityGlider || turned.Direction() != East {
		t.Errorf("InDirection mismatch: %v", turned)
	}
	swapped := a.WithEntity(EntityFireball)
	if swapped.Entity() != EntityFireball || swapped.Direction() != South {
		t.Errorf("WithEntity mismatch: %v", swapped)
	}
}
