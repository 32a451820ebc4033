package dat

import "github.com/vovakirdan/tileworld/internal/lynx"

// The MS format stores one byte per cell and mixes terrain and creature
// codes freely across both layers, so both remap tables are keyed by the
// raw byte. IDs 0x0e..0x11 appear in both tables on purpose: a block
// cloner is a cloner tile with a directional block resting on it.

var remapBottom = map[byte]lynx.Tile{
	0x00: lynx.TileFloor,
	0x01: lynx.TileWall,
	0x02: lynx.TileChip,
	0x03: lynx.TileWater,
	0x04: lynx.TileFire,
	0x05: lynx.TileWallInvisible,
	0x06: lynx.TileThinWallN,
	0x07: lynx.TileThinWallW,
	0x08: lynx.TileThinWallS,
	0x09: lynx.TileThinWallE,
	0x0b: lynx.TileDirt,
	0x0c: lynx.TileIce,
	0x0d: lynx.TileForceFloorS,
	0x0e: lynx.TileCloner,
	0x0f: lynx.TileCloner,
	0x10: lynx.TileCloner,
	0x11: lynx.TileCloner,
	0x12: lynx.TileForceFloorN,
	0x13: lynx.TileForceFloorE,
	0x14: lynx.TileForceFloorW,
	0x15: lynx.TileExit,
	0x16: lynx.TileLockBlue,
	0x17: lynx.TileLockRed,
	0x18: lynx.TileLockGreen,
	0x19: lynx.TileLockYellow,
	0x1a: lynx.TileIceCornerNW,
	0x1b: lynx.TileIceCornerNE,
	0x1c: lynx.TileIceCornerSE,
	0x1d: lynx.TileIceCornerSW,
	0x1e: lynx.TileWallBlueFake,
	0x1f: lynx.TileWallBlueReal,
	0x21: lynx.TileThief,
	0x22: lynx.TileSocket,
	0x23: lynx.TileButtonGreen,
	0x24: lynx.TileButtonRed,
	0x25: lynx.TileToggleWall,
	0x26: lynx.TileToggleFloor,
	0x27: lynx.TileButtonBrown,
	0x28: lynx.TileButtonBlue,
	0x29: lynx.TileTeleporter,
	0x2a: lynx.TileBomb,
	0x2b: lynx.TileTrap,
	0x2c: lynx.TileWallHidden,
	0x2d: lynx.TileGravel,
	0x2e: lynx.TileRecessedWall,
	0x2f: lynx.TileHint,
	0x30: lynx.TileThinWallSE,
	0x31: lynx.TileCloner,
	0x32: lynx.TileForceFloorRandom,
	0x39: lynx.TileFakeExit,
	0x3a: lynx.TileFakeExit,
	0x3b: lynx.TileFakeExit,
	0x64: lynx.TileKeyBlue,
	0x65: lynx.TileKeyRed,
	0x66: lynx.TileKeyGreen,
	0x67: lynx.TileKeyYellow,
	0x68: lynx.TileBootsWater,
	0x69: lynx.TileBootsFire,
	0x6a: lynx.TileBootsIce,
	0x6b: lynx.TileBootsForce,
}

var remapTop = map[byte]lynx.Actor{
	0x0a: lynx.MakeActor(lynx.EntityBlock, lynx.North),
	0x0e: lynx.MakeActor(lynx.EntityBlock, lynx.North),
	0x0f: lynx.MakeActor(lynx.EntityBlock, lynx.West),
	0x10: lynx.MakeActor(lynx.EntityBlock, lynx.South),
	0x11: lynx.MakeActor(lynx.EntityBlock, lynx.East),
}

// Creature codes come in quads ordered north, west, south, east, matching
// the native direction numbering.
func init() {
	quads := map[byte]lynx.Entity{
		0x40: lynx.EntityBug,
		0x44: lynx.EntityFireball,
		0x48: lynx.EntityBall,
		0x4c: lynx.EntityTank,
		0x50: lynx.EntityGlider,
		0x54: lynx.EntityTeeth,
		0x58: lynx.EntityWalker,
		0x5c: lynx.EntityBlob,
		0x60: lynx.EntityParamecium,
		0x6c: lynx.EntityChip,
	}
	for base, entity := range quads {
		for d := lynx.Direction(0); d < 4; d++ {
			remapTop[base+byte(d)] = lynx.MakeActor(entity, d)
		}
	}
}

// Burned and drowned chip tiles have no native equivalent and act as walls.
func wallActingChip(id byte) bool {
	return id >= 0x33 && id <= 0x35
}

// Swimming chip tiles have no native equivalent at all.
func swimmingChip(id byte) bool {
	return id >= 0x3c && id <= 0x3f
}
