package dat

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tileworld/internal/lynx"
)

// Converter translates raw MS levels into native levels. Unmappable cells
// are substituted rather than rejected, so a conversion always produces a
// level; Errors and Warnings report how much was lost along the way.
type Converter struct {
	log         *log.Logger
	ghostBlocks bool
	level       int
	errors      int
	warnings    int
}

func NewConverter() *Converter {
	return &Converter{log: log.New(io.Discard)}
}

// SetLogger routes substitution reports to l. The default logger discards
// everything.
func (c *Converter) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	c.log = l
}

// SetGhostBlocks toggles an optional pass that keeps inert blocks off the
// actor list until first pushed. It changes how levels play, so it is off
// unless asked for.
func (c *Converter) SetGhostBlocks(on bool) {
	c.ghostBlocks = on
}

// Errors returns the number of cells substituted because they could not
// be expressed natively, accumulated over all conversions.
func (c *Converter) Errors() int {
	return c.errors
}

// Warnings returns the number of cells converted with a close but not
// exact native equivalent, accumulated over all conversions.
func (c *Converter) Warnings() int {
	return c.warnings
}

// Convert translates one level. The layers are remapped cell by cell,
// then rewritten by the preprocessing passes: unlinked traps and cloners
// become their static variants, and permanently pinned blocks and
// monsters become decoration so they never waste an actor list slot.
func (c *Converter) Convert(ms *Level) *lynx.Level {
	c.level = ms.Number
	lv := &lynx.Level{
		Number:        ms.Number,
		Title:         ms.Title,
		Password:      ms.Password,
		Hint:          ms.Hint,
		TimeLimit:     ms.TimeLimit,
		RequiredChips: ms.RequiredChips,
		TrapLinks:     ms.TrapLinks,
		ClonerLinks:   ms.ClonerLinks,
	}

	i := 0
	for y := 0; y < lynx.GridHeight; y++ {
		for x := 0; x < lynx.GridWidth; x++ {
			lv.Bottom[i], lv.Top[i] = c.convertTile(ms.bottom[i], ms.top[i], x, y)
			i++
		}
	}

	c.replaceUnlinked(ms, lv)
	c.markStaticBlocks(lv)
	c.markStaticMonsters(lv)
	if c.ghostBlocks {
		c.markGhostBlocks(lv)
	}
	c.checkActorCount(lv)
	return lv
}

// convertTile maps one cell through the remap tables. MS levels in the
// wild hide terrain under actors and actors under terrain, so unmapped
// IDs get a second chance on the other layer before being substituted.
func (c *Converter) convertTile(bottom, top byte, x, y int) (lynx.Tile, lynx.Actor) {
	bottomTile, bottomOK := remapBottom[bottom]
	topActor, topOK := remapTop[top]

	if !topOK && bottom == 0x00 {
		// terrain stored on the top layer over plain floor
		bottomTile, bottomOK = remapBottom[top]
		topActor, topOK = lynx.ActorNone, true
	} else if !bottomOK && top == 0x00 {
		// an actor stored on the bottom layer
		bottomTile, bottomOK = lynx.TileFloor, true
		topActor, topOK = remapTop[bottom]
	}

	// a block cloner code maps to both layers at once and displaces
	// whatever else the cell held
	if bt, ok := remapBottom[bottom]; ok {
		if ta, ok := remapTop[bottom]; ok {
			return bt, ta
		}
	}
	if bt, ok := remapBottom[top]; ok {
		if ta, ok := remapTop[top]; ok {
			return bt, ta
		}
	}

	if wallActingChip(top) || wallActingChip(bottom) {
		c.warnings++
		c.log.Warn("wall-acting chip tile replaced by a wall",
			"level", c.level, "x", x, "y", y)
		return lynx.TileWall, lynx.ActorNone
	}
	if swimmingChip(bottom) || swimmingChip(top) {
		c.errors++
		c.log.Error("swimming chip tile cannot be converted",
			"level", c.level, "x", x, "y", y)
		return lynx.TileBomb, lynx.ActorNone
	}

	if !bottomOK {
		c.errors++
		c.log.Error("invalid bottom tile",
			"level", c.level, "id", fmt.Sprintf("%#02x", bottom), "x", x, "y", y)
		bottomTile = lynx.TileFloor
	}
	if !topOK {
		c.errors++
		c.log.Error("invalid top tile",
			"level", c.level, "id", fmt.Sprintf("%#02x", top), "x", x, "y", y)
		topActor = lynx.ActorNone
	}
	return bottomTile, topActor
}

// replaceUnlinked rewrites traps and cloners no button points at. The
// simulation never activates them, but their static variants also render
// correctly and keep resting actors off the actor list.
func (c *Converter) replaceUnlinked(ms *Level, lv *lynx.Level) {
	linked := mapset.New[int]()
	for _, l := range ms.TrapLinks {
		linked.Put(int(l.TargetY)*lynx.GridWidth + int(l.TargetX))
	}
	for _, l := range ms.ClonerLinks {
		linked.Put(int(l.TargetY)*lynx.GridWidth + int(l.TargetX))
	}

	cloners, traps := 0, 0
	for i := range lv.Bottom {
		switch lv.Bottom[i] {
		case lynx.TileCloner:
			if !linked.Has(i) {
				lv.Bottom[i] = lynx.TileStaticCloner
				cloners++
			}
		case lynx.TileTrap:
			if !linked.Has(i) {
				// a block on an unlinked trap is stuck for good
				if lv.Top[i].Entity() == lynx.EntityBlock {
					lv.Bottom[i] = lynx.TileWall
				} else {
					lv.Bottom[i] = lynx.TileStaticTrap
				}
				traps++
			}
		}
	}
	if cloners > 0 {
		c.log.Info("replaced unlinked cloners", "level", c.level, "count", cloners)
	}
	if traps > 0 {
		c.log.Info("replaced unlinked traps", "level", c.level, "count", traps)
	}
}

type blockade uint8

const (
	patAny blockade = iota
	patWall
	patBlock
)

// staticBlockPatterns are the corner shapes that pin a block for good,
// checked over its forward, side and diagonal neighbors for each facing.
// Walls here are cells no actor can ever vacate or unblock.
var staticBlockPatterns = [7][3]blockade{
	{patWall, patWall, patAny},
	{patWall, patBlock, patWall},
	{patBlock, patWall, patWall},
	{patWall, patBlock, patBlock},
	{patBlock, patBlock, patWall},
	{patBlock, patWall, patBlock},
	{patBlock, patBlock, patBlock},
}

// markStaticBlocks turns blocks that can never be pushed into wall cells
// with a decorative block on top. Marking one block can pin a neighbor,
// so cells are revisited until no more blocks qualify.
func (c *Converter) markStaticBlocks(lv *lynx.Level) {
	var invalid [lynx.GridSize]bool
	for i := range invalid {
		invalid[i] = true
	}
	pending := lynx.GridSize

	marked := 0
	for pending > 0 {
		for i := range invalid {
			if !invalid[i] {
				continue
			}
			invalid[i] = false
			pending--

			if lv.Top[i].Entity() != lynx.EntityBlock {
				continue
			}
			tile := lv.Bottom[i]
			if tile.IsSlide() || tile.IsIce() || tile.IsButton() || tile == lynx.TileCloner {
				continue
			}

			x, y := i%lynx.GridWidth, i/lynx.GridWidth
			if !pinnedBlock(lv, x, y) {
				continue
			}

			lv.Top[i] = lynx.ActorStaticBlock
			lv.Bottom[i] = lynx.TileWall
			marked++
			for d := lynx.Direction(0); d < 4; d++ {
				nx, ny := cellNeighbor(x, y, d)
				if nx < 0 || nx >= lynx.GridWidth || ny < 0 || ny >= lynx.GridHeight {
					continue
				}
				j := ny*lynx.GridWidth + nx
				if !invalid[j] {
					invalid[j] = true
					pending++
				}
			}
		}
	}
	if marked > 0 {
		c.log.Info("marked static blocks", "level", c.level, "count", marked)
	}
}

// pinnedBlock reports whether any facing of the block at (x, y) matches a
// static block pattern.
func pinnedBlock(lv *lynx.Level, x, y int) bool {
	for d := lynx.Direction(0); d < 4; d++ {
		side := d.Left()
		fx, fy := cellNeighbor(x, y, d)
		sx, sy := cellNeighbor(x, y, side)
		dx, dy := cellNeighbor(fx, fy, side)
		cells := [3][2]int{{fx, fy}, {sx, sy}, {dx, dy}}

		for _, pattern := range staticBlockPatterns {
			match := true
			for j, want := range pattern {
				tile, actor := cellAt(lv, cells[j][0], cells[j][1])
				switch want {
				case patWall:
					if !permanentWall(tile, actor) {
						match = false
					}
				case patBlock:
					if actor.Entity() != lynx.EntityBlock {
						match = false
					}
				}
				if !match {
					break
				}
			}
			if match {
				return true
			}
		}
	}
	return false
}

// permanentWall reports whether a cell blocks block movement and can
// never stop doing so. An occupied static trap counts: whatever rests on
// it will never be released.
func permanentWall(t lynx.Tile, a lynx.Actor) bool {
	return t.IsChipActingWall() || t == lynx.TileExit ||
		(t == lynx.TileStaticTrap && a.Entity() != lynx.EntityNone)
}

// markStaticMonsters turns walled-in bouncing monsters into decoration.
// Only monsters whose idle movement never changes the grid qualify, and
// only when every cell they could bounce to is permanently closed.
func (c *Converter) markStaticMonsters(lv *lynx.Level) {
	marked := 0
	for i := range lv.Top {
		entity := lv.Top[i].Entity()
		switch entity {
		case lynx.EntityFireball, lynx.EntityBall, lynx.EntityBlob:
		default:
			continue
		}
		tile := lv.Bottom[i]
		if tile.IsButton() || tile == lynx.TileStaticCloner || tile == lynx.TileStaticTrap {
			continue
		}

		var dirs []lynx.Direction
		if entity == lynx.EntityBall {
			// balls only ever move along their axis
			facing := lv.Top[i].Direction()
			dirs = []lynx.Direction{facing, facing.Back()}
		} else {
			dirs = []lynx.Direction{lynx.North, lynx.West, lynx.South, lynx.East}
		}

		x, y := i%lynx.GridWidth, i/lynx.GridWidth
		penned := true
		for _, d := range dirs {
			nx, ny := cellNeighbor(x, y, d)
			t, _ := cellAt(lv, nx, ny)
			if !monsterPen(t, entity) {
				penned = false
				break
			}
		}
		if !penned {
			continue
		}

		switch entity {
		case lynx.EntityFireball:
			lv.Top[i] = lynx.ActorStaticFireball
		case lynx.EntityBall:
			lv.Top[i] = lynx.ActorStaticBall
		default:
			lv.Top[i] = lynx.ActorStaticBlob
		}
		marked++
	}
	if marked > 0 {
		c.log.Info("marked static monsters", "level", c.level, "count", marked)
	}
}

// monsterPen reports whether a tile keeps a monster out permanently.
// Anything the player could pick up, open or press does not count.
func monsterPen(t lynx.Tile, entity lynx.Entity) bool {
	if t.IsChipActingWall() {
		return true
	}
	switch t {
	case lynx.TileGravel, lynx.TileStaticTrap, lynx.TileExit, lynx.TileThief, lynx.TileHint:
		return true
	}
	return t == lynx.TileFire && entity != lynx.EntityFireball
}

// markGhostBlocks rewrites resting blocks as ghost blocks. Ghosts stay
// off the actor list until first pushed; blocks on tiles that could make
// them move on their own are left alone.
func (c *Converter) markGhostBlocks(lv *lynx.Level) {
	marked := 0
	for i := range lv.Top {
		if lv.Top[i].Entity() != lynx.EntityBlock {
			continue
		}
		tile := lv.Bottom[i]
		if tile.IsButton() || tile.IsIce() || tile.IsSlide() ||
			tile == lynx.TileTrap || tile == lynx.TileCloner {
			continue
		}
		lv.Top[i] = lv.Top[i].WithEntity(lynx.EntityBlockGhost)
		marked++
	}
	if marked > 0 {
		c.log.Info("marked ghost blocks", "level", c.level, "count", marked)
	}
}

// checkActorCount takes the census the engine will take on level start
// and reports levels that overflow the actor list. Actors waiting on
// cloners spawn clones later, so those levels get an early warning.
func (c *Converter) checkActorCount(lv *lynx.Level) {
	count := 0
	hasCloners := false
	for i := range lv.Bottom {
		if lv.Bottom[i].IsStatic() {
			continue
		}
		entity := lv.Top[i].Entity()
		if entity.OnActorList() || entity == lynx.EntityChip {
			count++
			if lv.Bottom[i] == lynx.TileCloner {
				hasCloners = true
			}
		}
	}
	switch {
	case count > lynx.MaxActors:
		c.errors++
		c.log.Error("too many actors", "level", c.level, "count", count, "max", lynx.MaxActors)
	case hasCloners && count > lynx.MaxActors-20:
		c.warnings++
		c.log.Warn("actor count leaves little room for clones",
			"level", c.level, "count", count)
	default:
		c.log.Info("active actors", "level", c.level, "count", count)
	}
}

var (
	neighborDX = [4]int{0, -1, 0, 1}
	neighborDY = [4]int{-1, 0, 1, 0}
)

func cellNeighbor(x, y int, d lynx.Direction) (int, int) {
	return x + neighborDX[d], y + neighborDY[d]
}

// cellAt reads a cell, treating everything beyond the border as wall.
func cellAt(lv *lynx.Level, x, y int) (lynx.Tile, lynx.Actor) {
	if x < 0 || x >= lynx.GridWidth || y < 0 || y >= lynx.GridHeight {
		return lynx.TileWall, lynx.ActorNone
	}
	i := y*lynx.GridWidth + x
	return lv.Bottom[i], lv.Top[i]
}
