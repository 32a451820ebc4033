// Package lynx implements the Lynx ruleset of the tile puzzle: a 32x32
// two-layer grid, a capacity-bounded actor list and a deterministic
// tick-by-tick simulation compatible with recorded solutions.
//
// A Game is built from an immutable Level and owns a private copy of the
// grid. One call to Step consumes one 4-bit input mask and resolves one
// tick; nothing inside the package blocks, allocates per tick beyond the
// actor list, or shares state between instances.
package lynx

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// MaxActors bounds the actor list. Dead (hidden) entries are reused
	// before the list grows; once the bound is hit, spawns are skipped
	// with a warning rather than failing the game.
	MaxActors = 128

	// TicksPerSecond converts level time limits between seconds and
	// engine ticks.
	TicksPerSecond = 20

	// Ticks without a move before the player turns back to face south.
	chipRestTicks     = 15
	chipRestDirection = South

	indexNone = -1
)

// Game flag bits.
const (
	flagToggleState    = 1 << 0 // toggle walls flipped, applied next prestep
	flagTurnTanks      = 1 << 1 // reversed tanks may be on the grid
	flagChipSelfMoved  = 1 << 2 // player moved by free choice this tick
	flagChipForceMoved = 1 << 3 // player move was forced this tick
	flagChipCanUnslide = 1 << 4 // player may override force floor direction
	flagChipStuck      = 1 << 5 // player stuck on a teleporter forever
	flagNoTimeLimit    = 1 << 7 // level is untimed
)

// EndCause tells how a game ended. EndNone means play continues.
type EndCause uint8

const (
	EndNone EndCause = iota
	EndComplete
	EndDrowned
	EndBurned
	EndBombed
	EndOutOfTime
	EndCollided
)

func (c EndCause) String() string {
	switch c {
	case EndNone:
		return "none"
	case EndComplete:
		return "complete"
	case EndDrowned:
		return "drowned"
	case EndBurned:
		return "burned"
	case EndBombed:
		return "bombed"
	case EndOutOfTime:
		return "out of time"
	case EndCollided:
		return "collided"
	}
	return "unknown"
}

// Game is a running simulation of one level. It is not safe for concurrent
// use; give every goroutine its own instance.
type Game struct {
	level *Level
	log   *log.Logger

	bottom [GridSize]Tile
	top    [GridSize]Actor

	// actors[0] is always the player.
	actors []ActiveActor

	flags       uint8
	currentTime uint32
	chipsLeft   int
	keys        [4]uint8
	boots       uint8
	endCause    EndCause

	inputState DirMask

	// Direction the player chose on the most recent choice pass, used to
	// resolve diagonal input.
	chipFacing Direction
	// Direction of the player's last started movement, reapplied when a
	// trap releases the player.
	chipLastMove   Direction
	ticksSinceMove int

	// Player's destination this tick, or -1 when the player is not
	// moving freely. Used for phantom collision detection.
	chipNewX, chipNewY int
	// Actor index involved in a pending phantom collision.
	collidedWith  int
	collidedActor Actor

	// Saved player tile while a monster occupies the player's teleporter.
	teleportedChip Actor
	// Actor index currently springing a trap from a brown button.
	springingTrap int

	stepping        uint8
	initialSlideDir Direction
	randomSlideDir  Direction

	prng0        uint32
	prng1, prng2 uint8

	sanityChecks  bool
	strictInit    bool
	strictCloners bool
}

// NewGame builds a game for level, seeding the blob generator from the
// wall clock. Replays overwrite the seed with SetSeed before Restart.
// The level must contain exactly one player cell.
func NewGame(level *Level) (*Game, error) {
	g := &Game{
		level: level,
		log:   log.New(io.Discard),

		initialSlideDir: North,
		prng0:           uint32(time.Now().UnixNano()) & 0x7fffffff,

		sanityChecks:  true,
		strictInit:    true,
		strictCloners: true,
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// SetLogger routes capacity warnings and hint text to l. The default
// logger discards everything.
func (g *Game) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	g.log = l
}

// SetSeed sets the 31-bit state of the blob generator. Recorded solutions
// carry the seed they were played with; call before Restart.
func (g *Game) SetSeed(seed uint32) {
	g.prng0 = seed & 0x7fffffff
}

// SetStepping sets the 0-7 phase offset applied to the tick counter.
// Only teeth cadence and death animation delays observe it.
func (g *Game) SetStepping(stepping uint8) {
	g.stepping = stepping & 0x7
}

// SetSlideDir sets the initial direction of random force floors. Takes
// effect on the next Restart.
func (g *Game) SetSlideDir(d Direction) {
	g.initialSlideDir = d & 3
}

// SetSanityChecks toggles the per-tick consistency checks (default on).
func (g *Game) SetSanityChecks(on bool) {
	g.sanityChecks = on
}

// SetStrictInit toggles whether the initial actor scan stops at the
// capacity bound (default on).
func (g *Game) SetStrictInit(on bool) {
	g.strictInit = on
}

// SetStrictCloners toggles whether cloners refuse to spawn past the
// capacity bound (default on).
func (g *Game) SetStrictCloners(on bool) {
	g.strictCloners = on
}

// BottomAt returns the bottom-layer tile at (x, y). Coordinates must be
// within the grid.
func (g *Game) BottomAt(x, y int) Tile {
	return g.bottom[cellIndex(x, y)]
}

// TopAt returns the top-layer actor tile at (x, y). Coordinates must be
// within the grid.
func (g *Game) TopAt(x, y int) Actor {
	return g.top[cellIndex(x, y)]
}

// Actors returns a copy of the actor list. Entry 0 is the player.
func (g *Game) Actors() []ActiveActor {
	return append([]ActiveActor(nil), g.actors...)
}

// CurrentTime returns the tick counter.
func (g *Game) CurrentTime() uint32 {
	return g.currentTime
}

// ChipsLeft returns the number of chips still required.
func (g *Game) ChipsLeft() int {
	return g.chipsLeft
}

// Keys returns the held key counts in blue, red, green, yellow order.
func (g *Game) Keys() [4]uint8 {
	return g.keys
}

// Boots returns the held boots bitmask in water, fire, ice, force order.
func (g *Game) Boots() uint8 {
	return g.boots
}

func (g *Game) hasWaterBoots() bool { return g.boots&(1<<0) != 0 }
func (g *Game) hasFireBoots() bool  { return g.boots&(1<<1) != 0 }
func (g *Game) hasIceBoots() bool   { return g.boots&(1<<2) != 0 }
func (g *Game) hasSlideBoots() bool { return g.boots&(1<<3) != 0 }

// EndCause returns how the game ended, or EndNone while play continues.
func (g *Game) EndCause() EndCause {
	return g.endCause
}

// GameOver reports whether the game reached a terminal state.
func (g *Game) GameOver() bool {
	return g.endCause != EndNone
}

// Stuck reports whether the player is stuck on a teleporter forever.
func (g *Game) Stuck() bool {
	return g.flags&flagChipStuck != 0
}

// ChipPosition returns the player's grid position.
func (g *Game) ChipPosition() (x, y int) {
	chip := g.actors[0]
	return int(chip.X), int(chip.Y)
}

// Restart rewinds the game to the level's initial state. Seeding,
// stepping and strictness options are preserved; the blob generator keeps
// its current state unless reseeded.
func (g *Game) Restart() {
	// reset only fails on a level without a player, and NewGame already
	// rejected that.
	_ = g.reset()
}

func (g *Game) reset() error {
	g.bottom = g.level.Bottom
	g.top = g.level.Top

	g.flags = 0
	if g.level.TimeLimit == 0 {
		g.flags |= flagNoTimeLimit
	}
	g.currentTime = 0
	g.chipsLeft = int(g.level.RequiredChips)
	g.keys = [4]uint8{}
	g.boots = 0
	g.endCause = EndNone

	g.randomSlideDir = g.initialSlideDir

	g.chipFacing = South
	g.chipLastMove = North
	g.ticksSinceMove = 0
	g.chipNewX, g.chipNewY = -1, -1
	g.collidedWith = indexNone
	g.collidedActor = ActorNone
	g.teleportedChip = ActorNone
	g.springingTrap = indexNone

	g.prng1, g.prng2 = 0, 0

	return g.buildActorList()
}

// buildActorList scans the grid in reading order. Actors resting on
// static marker tiles are left off the list; the player is then swapped
// into slot 0.
func (g *Game) buildActorList() error {
	g.actors = g.actors[:0]
	chipIndex := -1
scan:
	for y := 0; y < GridHeight; y++ {
		for x := 0; x < GridWidth; x++ {
			entity := g.top[cellIndex(x, y)].Entity()
			if entity == EntityChip {
				chipIndex = len(g.actors)
			} else if !entity.OnActorList() {
				continue
			} else if g.bottom[cellIndex(x, y)].IsStatic() {
				continue
			}
			g.actors = append(g.actors, ActiveActor{X: uint8(x), Y: uint8(y)})

			if g.strictInit && len(g.actors) == MaxActors {
				g.log.Warn("max actors reached on level start", "max", MaxActors)
				break scan
			}
		}
	}

	if chipIndex == -1 {
		return fmt.Errorf("lynx: chip not found in level data")
	}
	if chipIndex > 0 {
		g.actors[0], g.actors[chipIndex] = g.actors[chipIndex], g.actors[0]
	}

	if !g.strictInit && len(g.actors) > MaxActors {
		g.log.Warn("more than max actors", "max", MaxActors, "got", len(g.actors))
	}
	return nil
}

// Step advances the game by one tick. The input mask may hold at most one
// direction bit per axis. Once the game is over Step does nothing.
func (g *Game) Step(input DirMask) error {
	if g.endCause != EndNone {
		return nil
	}
	if input&maskVertical == maskVertical || input&maskHorizontal == maskHorizontal {
		return fmt.Errorf("lynx: conflicting directions in input %#x", uint8(input))
	}
	g.inputState = input

	if g.currentTime == uint32(g.level.TimeLimit) && g.flags&flagNoTimeLimit == 0 {
		g.endCause = EndOutOfTime
		return nil
	}

	if g.sanityChecks {
		if err := g.stepCheck(); err != nil {
			return err
		}
	}

	g.prestep()
	g.chooseAllMoves()
	g.performAllMoves()
	g.teleportAll()

	// Time advances even on untimed levels, as several behaviors key off
	// the counter. Wrapping is harmless.
	g.currentTime++
	return nil
}

// stepCheck verifies the actor list and grid agree. It has no side
// effects on state.
func (g *Game) stepCheck() error {
	var seen [GridSize]bool
	dups := 0
	for _, act := range g.actors {
		if act.State == StateHidden {
			continue
		}
		pos := cellIndex(int(act.X), int(act.Y))
		if seen[pos] {
			dups++
		}
		seen[pos] = true
	}
	allowed := 0
	if g.teleportedChip != ActorNone {
		// a monster may share the player's teleporter for one tick
		allowed = 1
	}
	if dups > allowed {
		return fmt.Errorf("lynx: actors at the same position at tick %d", g.currentTime)
	}

	for i, act := range g.actors {
		if act.State == StateHidden {
			continue
		}
		if g.top[cellIndex(int(act.X), int(act.Y))].Entity() == EntityNone {
			if i == 0 && g.teleportedChip != ActorNone {
				continue
			}
			return fmt.Errorf("lynx: actor at (%d, %d) has no entity", act.X, act.Y)
		}
	}

	if g.teleportedChip == ActorNone {
		chip := g.actors[0]
		if g.top[cellIndex(int(chip.X), int(chip.Y))].Entity() != EntityChip {
			return fmt.Errorf("lynx: chip is not first in actor list")
		}
	}
	return nil
}

// prestep finishes applying changes queued by the previous tick.
func (g *Game) prestep() {
	if g.flags&flagToggleState != 0 {
		g.flags &^= flagToggleState
		for pos := range g.bottom {
			if g.bottom[pos].IsToggleTile() {
				g.bottom[pos] = g.bottom[pos].Toggled()
			}
		}
	}

	if g.flags&flagTurnTanks != 0 {
		g.flags &^= flagTurnTanks
		for i := range g.actors {
			if g.actors[i].State == StateHidden {
				continue
			}
			mact := g.checkoutActor(i)
			if mact.entity == EntityTankReversed {
				mact.entity = EntityTank
				if mact.step <= 0 {
					// don't turn tanks in between moves
					mact.direction = mact.direction.Back()
				}
				g.commitActor(&mact)
			}
		}
	}

	g.chipNewX, g.chipNewY = -1, -1
}

// chooseAllMoves picks a direction for every live, stationary actor, in
// reverse list order. Hidden actors tick down their animation delay.
func (g *Game) chooseAllMoves() {
	for i := len(g.actors) - 1; i >= 0; i-- {
		act := &g.actors[i]
		if act.State == StateHidden {
			if act.Step > 0 {
				act.Step--
			}
			continue
		}
		prev := act.State
		act.State = StateNone
		if act.Step <= 0 {
			mact := g.checkoutActor(i)
			g.chooseMove(&mact, prev == StateTeleported)
			g.commitActor(&mact)
		}
	}
}

// performAllMoves resolves every live actor's chosen move, in reverse
// list order, springing brown-button traps as actors land on them.
func (g *Game) performAllMoves() {
	for i := len(g.actors) - 1; i >= 0; i-- {
		if g.actors[i].State == StateHidden {
			continue
		}
		mact := g.checkoutActor(i)
		result := g.performMove(&mact, 0)
		persist := true
		if result != moveDied && mact.step <= 0 &&
			g.bottom[cellIndex(mact.x, mact.y)] == TileButtonBrown {
			// If this actor is a block pushed off the button while the
			// trap springs, it has already been persisted with a newer
			// position; committing this stale copy would undo that.
			// springTrap reports the case through springingTrap.
			g.springingTrap = i
			g.springTrap(mact.x, mact.y)
			persist = g.springingTrap != indexNone
			g.springingTrap = indexNone
		}
		if persist {
			g.commitActor(&mact)
		}
	}
}

// teleportAll relocates every resting actor standing on a teleporter, in
// reverse list order.
func (g *Game) teleportAll() {
	if g.endCause != EndNone {
		// keep a monster that collided on a teleporter visible
		return
	}
	for i := len(g.actors) - 1; i >= 0; i-- {
		act := g.actors[i]
		if act.State == StateHidden || act.Step > 0 {
			continue
		}
		if g.bottom[cellIndex(int(act.X), int(act.Y))] == TileTeleporter {
			mact := g.checkoutActor(i)
			g.teleportActor(&mact)
			g.commitActor(&mact)
		}
	}
}

// spawnActor finds a slot for a new actor, reusing a finished hidden slot
// when one exists. Returns nil when the capacity bound blocks the spawn.
// The result only takes effect if committed.
func (g *Game) spawnActor() *movingActor {
	for i, act := range g.actors {
		if act.State == StateHidden && act.Step == 0 {
			mact := g.checkoutActor(i)
			return &mact
		}
	}

	if g.strictCloners && len(g.actors) >= MaxActors {
		// levels should be made so that this never happens
		g.log.Warn("maximum number of actors reached", "max", MaxActors)
		return nil
	}

	g.actors = append(g.actors, ActiveActor{State: StateHidden})
	return &movingActor{index: len(g.actors) - 1, state: StateHidden}
}

// checkoutActor copies an actor-list entry into a working container,
// resolving entity and direction from the grid.
func (g *Game) checkoutActor(index int) movingActor {
	act := g.actors[index]
	tile := g.top[cellIndex(int(act.X), int(act.Y))]
	return movingActor{
		index:     index,
		x:         int(act.X),
		y:         int(act.Y),
		step:      act.Step,
		entity:    tile.Entity(),
		direction: tile.Direction(),
		state:     act.State,
	}
}

// commitActor writes a working container back to the actor list and the
// grid. The transient died/ghost states collapse to hidden; a dying actor
// leaves an animation tile, a ghost leaves its own tile behind.
func (g *Game) commitActor(m *movingActor) {
	act := &g.actors[m.index]
	act.X, act.Y, act.Step = uint8(m.x), uint8(m.y), m.step
	act.State = m.state & 0x3

	tile := ActorNone
	if m.state == stateDied {
		tile = ActorAnimation
	} else if m.state != StateHidden {
		tile = m.actor()
	}
	g.top[cellIndex(m.x, m.y)] = tile
}

// lookupActor checks out the first actor at (x, y), or nil when the cell
// has none. Animated remains count only when includeAnimated is set.
func (g *Game) lookupActor(x, y int, includeAnimated bool) *movingActor {
	for i, act := range g.actors {
		if int(act.X) != x || int(act.Y) != y {
			continue
		}
		if act.State != StateHidden || (includeAnimated && act.Step != 0) {
			mact := g.checkoutActor(i)
			return &mact
		}
	}
	return nil
}

// stopDeathAnimation clears the animation playing at (x, y), if any.
func (g *Game) stopDeathAnimation(x, y int) {
	for i := range g.actors {
		if int(g.actors[i].X) == x && int(g.actors[i].Y) == y {
			g.actors[i].Step = 0
		}
	}
	g.top[cellIndex(x, y)] = ActorNone
}
