package lynx

import "testing"

func TestTileVariantPairsKeysAndLocks(t *testing.T) {
	keys := []Tile{TileKeyBlue, TileKeyRed, TileKeyGreen, TileKeyYellow}
	locks := []Tile{TileLockBlue, TileLockRed, TileLockGreen, TileLockYellow}
	for i := range keys {
		if !keys[i].IsKey() {
			t.Errorf("%#x should be a key", uint8(keys[i]))
		}
		if !locks[i].IsLock() {
			t.Errorf("%#x should be a lock", uint8(locks[i]))
		}
		if keys[i].Variant() != locks[i].Variant() {
			t.Errorf("variant mismatch for pair %d: %d vs %d",
				i, keys[i].Variant(), locks[i].Variant())
		}
		if keys[i].Variant() != uint8(i) {
			t.Errorf("key %d variant mismatch: %d", i, keys[i].Variant())
		}
	}
}

func TestTileActingWallClasses(t *testing.T) {
	// The three classes nest: anything that stops the player also stops
	// blocks, and anything that stops blocks also stops monsters.
	for tile := Tile(0); tile < 0x40; tile++ {
		if tile.IsChipActingWall() && !tile.IsBlockActingWall() {
			t.Errorf("%#x stops the player but not blocks", uint8(tile))
		}
		if tile.IsBlockActingWall() && !tile.IsMonsterActingWall() {
			t.Errorf("%#x stops blocks but not monsters", uint8(tile))
		}
	}

	// Boundary members of each class.
	if !TileGravel.IsMonsterActingWall() || TileGravel.IsBlockActingWall() {
		t.Errorf("gravel should stop monsters only")
	}
	if !TileExit.IsBlockActingWall() || TileExit.IsChipActingWall() {
		t.Errorf("exit should stop blocks but not the player")
	}
	if !TileWall.IsChipActingWall() {
		t.Errorf("wall should stop the player")
	}
	for _, tile := range []Tile{TileWater, TileFire, TileBomb, TileTeleporter} {
		if tile.IsMonsterActingWall() {
			t.Errorf("%#x should not act as a wall", uint8(tile))
		}
	}
}

func TestTileToggle(t *testing.T) {
	if got := TileToggleFloor.Toggled(); got != TileToggleWall {
		t.Errorf("toggled floor mismatch: %#x", uint8(got))
	}
	if got := TileToggleWall.Toggled(); got != TileToggleFloor {
		t.Errorf("toggled wall mismatch: %#x", uint8(got))
	}
	// With the pending flip set, a stored wall already reads as floor.
	if got := TileToggleWall.WithToggleState(1); got != TileToggleFloor {
		t.Errorf("pending toggle mismatch: %#x", uint8(got))
	}
	if got := TileToggleWall.WithToggleState(0); got != TileToggleWall {
		t.Errorf("resting toggle mismatch: %#x", uint8(got))
	}
	if TileFloor.IsToggleTile() || !TileToggleFloor.IsToggleTile() {
		t.Errorf("toggle tile predicate mismatch")
	}
}

func TestTileIceAndSlideRanges(t *testing.T) {
	if !TileIce.IsIce() || TileIce.IsIceWall() {
		t.Errorf("plain ice misclassified")
	}
	for _, c := range []Tile{TileIceCornerNW, TileIceCornerSW, TileIceCornerSE, TileIceCornerNE} {
		if !c.IsIce() || !c.IsIceWall() {
			t.Errorf("ice corner %#x misclassified", uint8(c))
		}
	}
	for _, s := range []Tile{TileForceFloorN, TileForceFloorE, TileForceFloorRandom} {
		if !s.IsSlide() || s.IsIce() {
			t.Errorf("force floor %#x misclassified", uint8(s))
		}
	}
	if TileForceFloorE.Variant() != uint8(East) {
		t.Errorf("force floor direction variant mismatch: %d", TileForceFloorE.Variant())
	}
}

func TestTileRevealableWalls(t *testing.T) {
	if !TileWallBlueReal.IsRevealableWall() || !TileWallHidden.IsRevealableWall() {
		t.Errorf("revealable walls misclassified")
	}
	// The fake blue wall vanishes and the invisible wall stays invisible;
	// neither turns into a plain wall.
	if TileWallBlueFake.IsRevealableWall() || TileWallInvisible.IsRevealableWall() {
		t.Errorf("non-revealable walls misclassified")
	}
}
