package lynx

// Grid dimensions are fixed by the formats: every level is 32 by 32.
const (
	GridWidth  = 32
	GridHeight = 32
	GridSize   = GridWidth * GridHeight
)

// cellIndex maps grid coordinates to a layer slice index, row-major.
func cellIndex(x, y int) int {
	return y*GridWidth + x
}

// Link wires a button cell to the trap or cloner cell it controls.
type Link struct {
	ButtonX, ButtonY uint8
	TargetX, TargetY uint8
}

// Level is one decoded level: the initial map layers plus metadata.
// A Level is never mutated by the engine, so one instance can back any
// number of games and restarts.
type Level struct {
	Number   int
	Title    string
	Password string
	Hint     string

	// TimeLimit is in ticks. Zero means the level is untimed.
	TimeLimit uint16
	// RequiredChips is the chip count needed to open the socket.
	RequiredChips uint16

	Bottom [GridSize]Tile
	Top    [GridSize]Actor

	TrapLinks   []Link
	ClonerLinks []Link
}
