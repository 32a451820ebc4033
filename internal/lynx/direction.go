package lynx

// Direction is one of the four cardinal directions, numbered as in the
// reference ruleset. Direction masks combine into input bitfields and
// directional wall definitions.
type Direction uint8

const (
	North Direction = 0
	West  Direction = 1
	South Direction = 2
	East  Direction = 3
)

// DirMask is a bitfield of directions, one bit per Direction value.
// It is the input format consumed by Game.Step.
type DirMask uint8

const (
	MaskNorth DirMask = 1 << North
	MaskWest  DirMask = 1 << West
	MaskSouth DirMask = 1 << South
	MaskEast  DirMask = 1 << East

	maskVertical   = MaskNorth | MaskSouth
	maskHorizontal = MaskWest | MaskEast
)

// Mask returns the single-bit mask for d.
func (d Direction) Mask() DirMask {
	return 1 << d
}

// Back returns the opposite direction.
func (d Direction) Back() Direction {
	return (d + 2) & 3
}

// Right returns the direction one quarter turn clockwise.
func (d Direction) Right() Direction {
	return (d + 3) & 3
}

// Left returns the direction one quarter turn counterclockwise.
func (d Direction) Left() Direction {
	return (d + 1) & 3
}

func (d Direction) String() string {
	return [...]string{"north", "west", "south", "east"}[d&3]
}

var dirFromMask = [9]int8{-1, int8(North), int8(West), -1, int8(South), -1, -1, -1, int8(East)}

// directionFromMask converts a single-bit mask back to its Direction.
// The mask must have exactly one bit set.
func directionFromMask(m DirMask) Direction {
	return Direction(dirFromMask[m])
}

var dirDeltaX = [4]int{0, -1, 0, 1}
var dirDeltaY = [4]int{-1, 0, 1, 0}

// neighbor returns the position one cell away from (x, y) in the given
// direction. The result may be out of grid bounds.
func neighbor(x, y int, d Direction) (int, int) {
	return x + dirDeltaX[d], y + dirDeltaY[d]
}
