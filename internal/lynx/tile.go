package lynx

// Tile is a bottom-layer grid value. Tiles are always static; anything that
// moves lives on the top layer as an Actor. The numeric assignments are
// load-bearing: movement legality is decided by range and bit tests on the
// raw values, so tiles must keep these exact codes.
type Tile uint8

const (
	TileFloor       Tile = 0x00
	TileTrap        Tile = 0x01
	TileToggleFloor Tile = 0x02
	TileToggleWall  Tile = 0x03

	// Buttons, variant in low bits.
	TileButtonGreen Tile = 0x04
	TileButtonRed   Tile = 0x05
	TileButtonBrown Tile = 0x06
	TileButtonBlue  Tile = 0x07

	// Floor-acting keys.
	TileKeyBlue Tile = 0x08
	TileKeyRed  Tile = 0x09

	TileThinWallN  Tile = 0x0c
	TileThinWallW  Tile = 0x0d
	TileThinWallS  Tile = 0x0e
	TileThinWallE  Tile = 0x0f
	TileThinWallSE Tile = 0x10

	TileIce         Tile = 0x13
	TileIceCornerNW Tile = 0x14
	TileIceCornerSW Tile = 0x15
	TileIceCornerSE Tile = 0x16
	TileIceCornerNE Tile = 0x17

	TileForceFloorN      Tile = 0x18
	TileForceFloorW      Tile = 0x19
	TileForceFloorS      Tile = 0x1a
	TileForceFloorE      Tile = 0x1b
	TileForceFloorRandom Tile = 0x1c

	// Acting walls for monsters only.
	TileGravel     Tile = 0x1e
	TileExit       Tile = 0x1f
	TileBootsWater Tile = 0x20
	TileBootsFire  Tile = 0x21
	TileBootsIce   Tile = 0x22
	TileBootsForce Tile = 0x23

	// Acting walls for monsters and blocks.
	TileLockBlue   Tile = 0x24
	TileLockRed    Tile = 0x25
	TileLockGreen  Tile = 0x26
	TileLockYellow Tile = 0x27
	TileKeyGreen   Tile = 0x2a
	TileKeyYellow  Tile = 0x2b
	TileThief      Tile = 0x2c
	TileChip       Tile = 0x2d

	// Acting walls for all actors.
	TileRecessedWall  Tile = 0x2e
	TileWallBlueFake  Tile = 0x2f
	TileSocket        Tile = 0x30
	TileDirt          Tile = 0x31
	TileHint          Tile = 0x32
	TileWall          Tile = 0x33
	TileWallBlueReal  Tile = 0x34
	TileWallHidden    Tile = 0x35
	TileWallInvisible Tile = 0x36
	TileFakeExit      Tile = 0x37
	TileCloner        Tile = 0x38

	TileStaticCloner Tile = 0x3a
	TileStaticTrap   Tile = 0x3b

	TileTeleporter Tile = 0x3c
	TileWater      Tile = 0x3d
	TileFire       Tile = 0x3e
	TileBomb       Tile = 0x3f

	// Internal use only, never present in encoded level data.
	TileBlock         Tile = 0x40
	TileChipDrowned   Tile = 0x41
	TileChipBurned    Tile = 0x42
	TileChipBombed    Tile = 0x43
	TileChipSwimmingN Tile = 0x44
	TileChipSwimmingW Tile = 0x45
	TileChipSwimmingS Tile = 0x46
	TileChipSwimmingE Tile = 0x47
)

// Variant returns the 2-bit variant for keys, locks, boots, buttons, force
// floors and ice corners.
func (t Tile) Variant() uint8 {
	return uint8(t) & 0x3
}

// IsKey also matches 0x0a, 0x0b, 0x28 and 0x29, which are left unassigned
// for that purpose.
func (t Tile) IsKey() bool {
	return t&0x1c == 0x08
}

func (t Tile) IsLock() bool {
	return t&^0x3 == TileLockBlue
}

func (t Tile) IsBoots() bool {
	return t&^0x3 == TileBootsWater
}

func (t Tile) IsButton() bool {
	return t&^0x3 == TileButtonGreen
}

func (t Tile) IsThinWall() bool {
	return t >= TileThinWallN && t <= TileThinWallSE
}

func (t Tile) IsIce() bool {
	return t >= TileIce && t <= TileIceCornerNE
}

// IsIceWall reports whether the tile is one of the four ice corners.
func (t Tile) IsIceWall() bool {
	return t&^0x3 == TileIceCornerNW
}

func (t Tile) IsSlide() bool {
	return t >= TileForceFloorN && t <= TileForceFloorRandom
}

func (t Tile) IsMonsterActingWall() bool {
	return t >= 0x1e && t <= 0x3a
}

func (t Tile) IsBlockActingWall() bool {
	return t >= 0x1f && t <= 0x3a
}

func (t Tile) IsChipActingWall() bool {
	return t >= 0x33 && t <= 0x3a
}

// IsRevealableWall matches the hidden wall and the real blue wall, which
// turn into a plain wall when the player bumps them.
func (t Tile) IsRevealableWall() bool {
	return t&^0x1 == TileWallBlueReal
}

func (t Tile) IsStatic() bool {
	return t&^0x1 == TileStaticCloner
}

func (t Tile) IsToggleTile() bool {
	return t&^0x1 == TileToggleFloor
}

// WithToggleState resolves a toggle tile against the pending toggle parity:
// with state 1 the stored value reads as its flipped counterpart.
func (t Tile) WithToggleState(state uint8) Tile {
	return t ^ Tile(state)
}

// Toggled returns the flipped counterpart of a toggle tile.
func (t Tile) Toggled() Tile {
	return t.WithToggleState(0x1)
}
