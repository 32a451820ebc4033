package lynx

// Context flags for canMove and performMove.
const (
	cmmStartMovement = 1 << 0 // called while starting a movement
	cmmPushBlocks    = 1 << 1 // pushed blocks change direction
	cmmPushBlocksNow = 1 << 2 // pushed blocks also move
	cmmReleasing     = 1 << 3 // actor is released from a trap or cloner
	cmmClearAnim     = 1 << 4 // clear a death animation on the target tile

	cmmPushBlocksAll = cmmPushBlocks | cmmPushBlocksNow
)

// moveResult is the outcome of startMovement and performMove.
type moveResult uint8

const (
	moveFail    moveResult = iota // blocked, actor still alive
	moveSuccess                   // moved, or legitimately stayed
	moveDied                      // died as a result of the move
)

// Directions blocked when leaving a tile: four thin wall kinds, then the
// four ice corners.
var thinWallFrom = [9]DirMask{
	MaskNorth,
	MaskWest,
	MaskSouth,
	MaskEast,
	MaskSouth | MaskEast,
	MaskNorth | MaskWest,
	MaskSouth | MaskWest,
	MaskSouth | MaskEast,
	MaskNorth | MaskEast,
}

// Directions blocked when entering a tile, same indexing.
var thinWallTo = [9]DirMask{
	MaskSouth,
	MaskEast,
	MaskNorth,
	MaskWest,
	MaskNorth | MaskWest,
	MaskSouth | MaskEast,
	MaskNorth | MaskEast,
	MaskNorth | MaskWest,
	MaskSouth | MaskWest,
}

// New direction after sliding onto an ice corner, indexed by incoming
// direction (north, west, south, east) plus 4 times the corner variant.
// -1 keeps the direction, for entries only reachable by bouncing.
var iceWallTurn = [16]int8{
	int8(East), int8(South), -1, -1, // ice wall north west
	-1, int8(North), int8(East), -1, // ice wall south west
	-1, -1, int8(West), int8(North), // ice wall south east
	int8(West), -1, -1, int8(South), // ice wall north east
}

// Blob directions drawn from the 31-bit generator, clockwise from north.
var blobDirections = [4]Direction{North, East, South, West}

// canMove reports whether act may move one cell in dir. Depending on
// flags this has side effects: blocks get pushed, revealable walls
// revealed, death animations cleared and ghost blocks materialized.
func (g *Game) canMove(act *movingActor, dir Direction, flags int) bool {
	px, py := neighbor(act.x, act.y, dir)
	if px < 0 || px >= GridWidth || py < 0 || py >= GridHeight {
		return false
	}

	tileFrom := g.bottom[cellIndex(act.x, act.y)]
	tileTo := g.bottom[cellIndex(px, py)]

	if (tileFrom == TileTrap || tileFrom == TileCloner) && flags&cmmReleasing == 0 {
		return false
	}
	if tileFrom == TileStaticTrap {
		return false
	}

	if tileTo.IsToggleTile() && tileTo.WithToggleState(g.flags&flagToggleState) == TileToggleWall {
		// toggle state can flip more than once per tick, so only the
		// flag changes here and prestep folds it into the grid
		return false
	}

	if tileFrom.IsSlide() && (act.entity != EntityChip || !g.hasSlideBoots()) &&
		g.slideDir(tileFrom, false) == dir.Back() {
		// cannot move back against a force floor
		return false
	}

	var thinWall DirMask
	if tileFrom.IsThinWall() {
		thinWall |= thinWallFrom[tileFrom-TileThinWallN]
	} else if tileFrom.IsIceWall() {
		thinWall |= thinWallFrom[tileFrom-TileIceCornerNW+5]
	}
	if tileTo.IsThinWall() {
		thinWall |= thinWallTo[tileTo-TileThinWallN]
	} else if tileTo.IsIceWall() {
		thinWall |= thinWallTo[tileTo-TileIceCornerNW+5]
	}
	if thinWall&dir.Mask() != 0 {
		return false
	}

	switch {
	case act.entity == EntityChip:
		if tileTo.IsChipActingWall() && !tileTo.IsRevealableWall() {
			return false
		}
		if tileTo == TileSocket && g.chipsLeft > 0 {
			return false
		}
		if tileTo.IsLock() && g.keys[tileTo.Variant()] == 0 {
			return false
		}

		other := g.lookupActor(px, py, true)
		if other == nil && g.top[cellIndex(px, py)].Entity() == EntityBlockGhost {
			// a ghost block without an actor entry; give it one now so
			// it can be pushed
			if newBlock := g.spawnActor(); newBlock != nil {
				newBlock.entity = EntityBlockGhost
				newBlock.x, newBlock.y = px, py
				newBlock.state = StateNone
				other = newBlock
			}
		}
		if other != nil {
			if other.state == StateHidden {
				if other.step > 0 {
					// death animations block the player
					return false
				}
			} else if other.entity.IsBlock() {
				if !g.canPushBlock(other, dir, flags&^cmmReleasing) {
					if other.entity == EntityBlockGhost {
						// freshly materialized and immovable, hide it again
						g.actors[other.index].State = StateHidden
					}
					return false
				}
			}
		}

		if tileTo.IsRevealableWall() {
			if flags&cmmStartMovement != 0 {
				g.bottom[cellIndex(px, py)] = TileWall
			}
			return false
		}
		if g.flags&flagChipStuck != 0 {
			return false
		}
		return true

	case act.entity.IsBlock():
		if act.step > 0 {
			// a block in between moves cannot be pushed
			return false
		}
		if tileTo.IsBlockActingWall() {
			return false
		}

	default:
		if tileTo.IsMonsterActingWall() {
			return false
		}
		if tileTo == TileFire && act.entity != EntityFireball {
			// fire is a wall to all monsters except fireballs
			return false
		}
	}

	other := g.top[cellIndex(px, py)]
	if other.Entity().IsMonsterOrBlock() {
		// location claimed
		return false
	}
	if flags&cmmClearAnim != 0 && other == ActorAnimation {
		g.stopDeathAnimation(px, py)
	}
	return true
}

// canPushBlock reports whether block may be pushed in dir. With
// cmmPushBlocks the block turns; with cmmPushBlocksNow it also moves.
func (g *Game) canPushBlock(block *movingActor, dir Direction, flags int) bool {
	canPush := true
	changed := false
	if !g.canMove(block, dir, flags) {
		canPush = false
		// turn the block anyway, unless it was force moved this tick
		if block.step == 0 && flags&cmmPushBlocksAll != 0 && block.state != StateMoved {
			block.direction = dir
			changed = true
		}
	} else if flags&cmmPushBlocksAll != 0 {
		block.direction = dir
		block.state = StateMoved
		if flags&cmmPushBlocksNow != 0 {
			g.performMove(block, 0)
		}
		changed = true
		if block.index == g.springingTrap {
			// the block moved off the trap button, nobody springs it now
			g.springingTrap = indexNone
		}
	}
	if changed {
		g.commitActor(block)
	}
	return canPush
}

// chooseMove picks this tick's direction for a resting actor. The
// teleported flag marks actors teleported on the previous tick, whose
// move out of the teleporter is forced.
func (g *Game) chooseMove(act *movingActor, teleported bool) {
	g.applyForcedMove(act, teleported)

	if act.entity == EntityChip {
		g.chooseChipMove(act)
		g.chipFacing = act.direction

		g.collidedWith = indexNone
		if act.state == StateMoved {
			g.ticksSinceMove = 0
			if g.flags&flagChipForceMoved == 0 {
				// phantom collisions do not apply to forced moves
				g.chipNewX, g.chipNewY = neighbor(act.x, act.y, act.direction)
			}
		} else {
			if g.ticksSinceMove == chipRestTicks {
				act.direction = chipRestDirection
			} else if g.ticksSinceMove < chipRestTicks {
				g.ticksSinceMove++
			}
		}
	} else if !act.entity.IsBlock() {
		g.chooseMonsterMove(act)
	} else if act.entity == EntityBlockGhost && act.state == StateNone {
		// a ghost block that never moved leaves the actor list but keeps
		// its tile, unless removing it would skip a button or trap effect
		tile := g.bottom[cellIndex(act.x, act.y)]
		if !tile.IsButton() && tile != TileTrap {
			act.state = stateGhost
		}
	}
	// regular blocks never move by themselves
}

// applyForcedMove applies ice, force floor and teleporter exit moves.
// Nothing is ever forced on the very first tick.
func (g *Game) applyForcedMove(act *movingActor, teleported bool) {
	if g.currentTime == 0 {
		return
	}

	tile := g.bottom[cellIndex(act.x, act.y)]
	if tile.IsIce() {
		if act.entity == EntityChip && g.hasIceBoots() {
			return
		}
		// keep sliding in the same direction
	} else if tile.IsSlide() {
		if act.entity == EntityChip && g.hasSlideBoots() {
			return
		}
		act.direction = g.slideDir(tile, true)
	} else if !teleported {
		return
	}

	if act.entity == EntityChip {
		g.flags |= flagChipForceMoved
	}
	act.state = StateMoved
}

// chooseChipMove resolves the player's input mask into a direction.
func (g *Game) chooseChipMove(act *movingActor) {
	state := g.inputState
	if state == 0 {
		return
	}

	if g.flags&flagChipForceMoved != 0 && g.flags&flagChipCanUnslide == 0 {
		// forced move without unslide permission, free choice is ignored
		return
	}

	if state&maskVertical != 0 && state&maskHorizontal != 0 {
		// diagonal input
		lastMask := g.chipFacing.Mask()
		if state&lastMask != 0 {
			// keep the current direction, switch only when it is
			// blocked and the other one is open
			other := directionFromMask(lastMask ^ state)
			canMoveCurr := g.canMove(act, g.chipFacing, cmmPushBlocks)
			canMoveOther := g.canMove(act, other, cmmPushBlocks)
			if !canMoveCurr && canMoveOther {
				act.direction = other
			} else {
				act.direction = g.chipFacing
			}
		} else {
			// neither direction is current, horizontal has priority
			if g.canMove(act, directionFromMask(state&maskHorizontal), cmmPushBlocks) {
				state &= maskHorizontal
			} else {
				state &= maskVertical
			}
			act.direction = directionFromMask(state)
		}
	} else {
		act.direction = directionFromMask(state)
		// evaluated for side effects only: this may push a block
		g.canMove(act, act.direction, cmmPushBlocks)
	}

	g.flags |= flagChipSelfMoved
	act.state = StateMoved
}

// Placeholder choices resolved lazily, so that blocked monsters do not
// advance the generators.
const (
	walkerTurn int8 = -1
	blobTurn   int8 = -2
)

// chooseMonsterMove picks a direction from the entity's preference list.
func (g *Game) chooseMonsterMove(act *movingActor) {
	if act.state == StateMoved {
		// move was forced, do not override
		return
	}

	tile := g.bottom[cellIndex(act.x, act.y)]
	if tile == TileCloner || tile == TileTrap {
		return
	}

	forward := act.direction
	var buf [4]int8
	choices := buf[:0]
	switch {
	case act.entity == EntityTeeth:
		// teeth chase the player at half speed
		if (g.currentTime+uint32(g.stepping))&0x4 != 0 {
			return
		}
		chipX, chipY := g.ChipPosition()
		dx := chipX - act.x
		dy := chipY - act.y
		if dx < 0 {
			choices = append(choices, int8(West))
		} else if dx > 0 {
			choices = append(choices, int8(East))
		}
		if dy < 0 {
			choices = append(choices, int8(North))
		} else if dy > 0 {
			choices = append(choices, int8(South))
		}
		if abs(dy) >= abs(dx) && len(choices) == 2 {
			// the larger axis delta goes first
			choices[0], choices[1] = choices[1], choices[0]
		}
	case act.entity == EntityBlob:
		choices = append(choices, blobTurn)
	case act.entity.IsTank():
		choices = append(choices, int8(forward))
	case act.entity == EntityWalker:
		// forward, then a random turn when blocked
		choices = append(choices, int8(forward), walkerTurn)
	case act.entity == EntityBall:
		choices = append(choices, int8(forward), int8(forward.Back()))
	default:
		left, right, back := forward.Left(), forward.Right(), forward.Back()
		switch act.entity {
		case EntityBug:
			choices = append(choices, int8(left), int8(forward), int8(right), int8(back))
		case EntityParamecium:
			choices = append(choices, int8(right), int8(forward), int8(left), int8(back))
		case EntityGlider:
			choices = append(choices, int8(forward), int8(left), int8(right), int8(back))
		default: // fireball
			choices = append(choices, int8(forward), int8(right), int8(left), int8(back))
		}
	}

	// Even with every direction blocked the actor still counts as moved,
	// in case another actor frees a path later this tick.
	act.state = StateMoved
	for _, c := range choices {
		var choice Direction
		switch c {
		case walkerTurn:
			choice = Direction((int(forward) - int(g.lynxRand()&0x3) + 4) & 0x3)
		case blobTurn:
			choice = blobDirections[g.twRand()>>29]
		default:
			choice = Direction(c)
		}
		act.direction = choice
		if g.canMove(act, choice, cmmClearAnim) {
			return
		}
	}

	if act.entity == EntityTeeth && len(choices) > 0 {
		// every direction failed, but teeth still face the player
		act.direction = Direction(choices[0])
	}
}

// performMove starts, continues or finishes the actor's current move.
func (g *Game) performMove(act *movingActor, flags int) moveResult {
	if act.step <= 0 {
		dirBefore := North
		if flags&cmmReleasing != 0 {
			// a trap release reuses the player's last started move, so
			// the trap cannot turn the player
			if act.entity == EntityChip {
				dirBefore = act.direction
				act.direction = g.chipLastMove
			}
		} else if act.state == StateNone {
			return moveSuccess
		}

		result := g.startMovement(act, flags)
		if result != moveSuccess {
			// no need to hide the actor on death here: dying in
			// startMovement means a collision, which ends the game with
			// the colliding tile kept visible
			if flags&cmmReleasing != 0 && act.entity == EntityChip {
				act.direction = dirBefore
				g.chipLastMove = dirBefore
			}
			return result
		}
	}

	if !g.continueMovement(act) {
		end := g.endMovement(act)
		if end != EndNone {
			if act.entity == EntityChip {
				g.endCause = end
			} else {
				// replace the actor with a death animation for a few ticks
				act.state = stateDied
				act.step = 11 + int8((g.currentTime+uint32(g.stepping))&0x1)
			}
			return moveDied
		}
	}

	return moveSuccess
}

// startMovement begins a chosen move: legality, the three player
// collision cases, and vacating the origin cell.
func (g *Game) startMovement(act *movingActor, flags int) moveResult {
	tileFrom := g.bottom[cellIndex(act.x, act.y)]

	if act.entity == EntityChip {
		if !g.hasSlideBoots() {
			if tileFrom.IsSlide() && g.flags&flagChipSelfMoved == 0 {
				// carried onto a force floor, earn unslide permission
				g.flags |= flagChipCanUnslide
			} else if !tileFrom.IsIce() || g.hasIceBoots() {
				g.flags &^= flagChipCanUnslide
			}
		}
		g.flags &^= flagChipForceMoved | flagChipSelfMoved
		g.chipLastMove = act.direction
	}

	if !g.canMove(act, act.direction, cmmStartMovement|cmmClearAnim|cmmPushBlocksNow|flags) {
		// either another actor took the cell first, or a forced move
		// points into a wall
		if tileFrom.IsIce() && (act.entity != EntityChip || !g.hasIceBoots()) {
			act.direction = act.direction.Back()
			g.applyIceWallTurn(act)
		}
		return moveFail
	}

	// collision case 1: the player is moving onto this monster's cell
	chipCollided := false
	if act.entity.IsMonster() && act.x == g.chipNewX && act.y == g.chipNewY {
		g.collidedWith = act.index
		g.collidedActor = act.actor()
	} else if act.entity == EntityChip && g.collidedWith != indexNone {
		other := g.actors[g.collidedWith]
		if other.State != StateHidden {
			// the monster has since moved on; pull it off the cell it
			// moved to so the collision shows at the meeting point
			chipCollided = true
			g.top[cellIndex(int(other.X), int(other.Y))] = ActorNone
		}
	}

	// collision case 2: the player moves onto an occupied cell
	x, y := neighbor(act.x, act.y, act.direction)
	if act.entity == EntityChip {
		if other := g.top[cellIndex(x, y)]; other.Entity() != EntityNone {
			chipCollided = true
			g.collidedActor = other
		}
	}

	if tileFrom != TileCloner {
		// a released clone parent leaves its tile for the clone
		g.top[cellIndex(act.x, act.y)] = ActorNone
	}
	act.x, act.y = x, y
	// the top tile at the new position is written on commit, since the
	// direction can still change before then (ice wall turns)

	// collision case 3: a monster or block moves onto the player's cell
	if act.entity != EntityChip {
		chip := g.actors[0]
		if x == int(chip.X) && y == int(chip.Y) {
			chipCollided = true
			g.collidedActor = g.top[cellIndex(x, y)]
			// The game is over, but the rest of the tick still runs and
			// this actor takes the player's cell. Clear the player's
			// chosen move so the dead slot does not act again; hiding it
			// instead would hide the collision itself.
			g.actors[0].State = StateNone
		}
	}

	if chipCollided {
		g.endCause = EndCollided
		return moveDied
	}

	act.step += 8
	return moveSuccess
}

// continueMovement burns this tick's share of an in-progress move: speed
// 2 per tick, 1 for blobs, doubled on ice and force floors. Reports
// whether the move is still in progress.
func (g *Game) continueMovement(act *movingActor) bool {
	tile := g.bottom[cellIndex(act.x, act.y)]

	speed := int8(2)
	if act.entity == EntityBlob {
		speed = 1
	}
	if tile.IsIce() && (act.entity != EntityChip || !g.hasIceBoots()) {
		speed *= 2
	} else if tile.IsSlide() && (act.entity != EntityChip || !g.hasSlideBoots()) {
		speed *= 2
	}

	act.step -= speed
	return act.step > 0
}

// endMovement applies the side effects of arriving on a tile. The
// returned cause is EndNone when the actor survived.
func (g *Game) endMovement(act *movingActor) EndCause {
	tile := g.bottom[cellIndex(act.x, act.y)]
	variant := tile.Variant()

	if act.entity != EntityChip || !g.hasIceBoots() {
		g.applyIceWallTurn(act)
	}

	newTile := TileFloor
	changed := false
	end := EndNone

	if act.entity == EntityChip {
		switch {
		case tile == TileWater:
			if !g.hasWaterBoots() {
				end = EndDrowned
			}
		case tile == TileFire:
			if !g.hasFireBoots() {
				end = EndBurned
			}
		case tile == TileDirt || tile == TileWallBlueFake:
			newTile, changed = TileFloor, true
		case tile == TileRecessedWall:
			newTile, changed = TileWall, true
		case tile.IsLock():
			// green locks don't consume their key
			if tile != TileLockGreen {
				g.keys[variant]--
			}
			newTile, changed = TileFloor, true
		case tile.IsKey():
			if g.keys[variant] < 255 {
				g.keys[variant]++
			}
			newTile, changed = TileFloor, true
		case tile.IsBoots():
			g.boots |= 1 << variant
			newTile, changed = TileFloor, true
		case tile == TileThief:
			g.boots = 0
		case tile == TileChip:
			if g.chipsLeft > 0 {
				g.chipsLeft--
			}
			newTile, changed = TileFloor, true
		case tile == TileSocket:
			newTile, changed = TileFloor, true
		case tile == TileExit:
			end = EndComplete
		case tile == TileHint:
			g.log.Info("hint", "text", g.level.Hint)
		}
	} else {
		// block or monster
		if tile == TileWater {
			if act.entity.IsBlock() {
				newTile, changed = TileDirt, true
			}
			if act.entity != EntityGlider {
				end = EndDrowned
			}
		} else if tile == TileKeyBlue {
			// monsters and blocks destroy blue keys
			newTile, changed = TileFloor, true
		}
		// fire acts as a wall to monsters, so only fireballs and blocks
		// get here, and both survive it
	}

	switch tile {
	case TileBomb:
		newTile, changed = TileFloor, true
		end = EndBombed
	case TileButtonGreen:
		g.flags ^= flagToggleState
	case TileButtonBlue:
		g.turnTanks(act)
	case TileButtonRed:
		g.activateCloner(act.x, act.y)
	}

	if changed {
		g.bottom[cellIndex(act.x, act.y)] = newTile
	}
	return end
}

// turnTanks queues a reversal of every tank not on ice or a cloner. The
// actual turn happens next prestep, unless another blue button press
// queues it again first.
func (g *Game) turnTanks(trigger *movingActor) {
	g.flags |= flagTurnTanks
	if trigger.entity.IsTank() {
		// the trigger is checked out; flipping only its grid tile would
		// be undone when the working copy commits
		trigger.entity = trigger.entity.ReverseTank()
	}
	for _, act := range g.actors {
		if act.State == StateHidden {
			continue
		}
		pos := cellIndex(int(act.X), int(act.Y))
		tile := g.bottom[pos]
		if tile == TileCloner || tile.IsIce() {
			continue
		}
		if top := g.top[pos]; top.Entity().IsTank() {
			g.top[pos] = top.WithEntity(top.Entity().ReverseTank())
		}
	}
}

func findLink(x, y int, links []Link) (int, int, bool) {
	for _, l := range links {
		if int(l.ButtonX) == x && int(l.ButtonY) == y {
			return int(l.TargetX), int(l.TargetY), true
		}
	}
	return 0, 0, false
}

// springTrap releases the actor held by the trap linked to the brown
// button at (x, y).
func (g *Game) springTrap(x, y int) {
	tx, ty, ok := findLink(x, y, g.level.TrapLinks)
	if !ok {
		return
	}
	if act := g.lookupActor(tx, ty, false); act != nil {
		g.performMove(act, cmmReleasing)
		g.commitActor(act)
	}
}

// activateCloner clones the actor on the cloner linked to the red button
// at (x, y). When the actor list is full the parent is released instead
// and the cloner is left empty.
func (g *Game) activateCloner(x, y int) {
	tx, ty, ok := findLink(x, y, g.level.ClonerLinks)
	if !ok {
		return
	}
	parent := g.lookupActor(tx, ty, false)
	if parent == nil {
		// cloner is empty
		return
	}

	clone := g.spawnActor()
	if clone == nil {
		if g.performMove(parent, cmmReleasing) == moveSuccess {
			g.top[cellIndex(tx, ty)] = ActorNone
			g.commitActor(parent)
		}
		return
	}

	clone.x, clone.y, clone.step = parent.x, parent.y, parent.step
	clone.entity, clone.direction, clone.state = parent.entity, parent.direction, parent.state

	parent.state = StateMoved
	if g.performMove(parent, cmmReleasing) == moveSuccess {
		g.commitActor(parent)
		// the clone takes the parent's place on the cloner
		g.commitActor(clone)
	}
	// on failure neither is persisted: the parent keeps its spot and the
	// clone stays hidden
}

// teleportActor relocates an actor standing on a teleporter to the
// previous teleporter in reading order whose exit is open, wrapping
// around. With no destination the actor stays, stuck if it is the player.
func (g *Game) teleportActor(act *movingActor) {
	if act.index == 0 && act.entity != EntityChip {
		// the player tile was saved when a monster teleported onto it;
		// restore it now that the player teleports away
		act.entity = g.teleportedChip.Entity()
		act.direction = g.teleportedChip.Direction()
		g.teleportedChip = ActorNone
	} else {
		// unclaim the tile so the actor's own teleporter reads as free;
		// in the saved-player case the tile belongs to the other actor
		g.top[cellIndex(act.x, act.y)] = ActorNone
	}

	pos := act.x + act.y*GridWidth
	orig := pos
	for {
		pos = (pos - 1 + GridSize) % GridSize
		px := pos % GridWidth
		py := pos / GridWidth

		if g.bottom[cellIndex(px, py)] == TileTeleporter {
			act.x, act.y = px, py
			if !g.top[cellIndex(px, py)].Entity().IsMonsterOrBlock() &&
				g.canMove(act, act.direction, 0) {
				// position already updated above so canMove tested the
				// destination; the teleported state forces the move out
				act.state = StateTeleported

				if top := g.top[cellIndex(px, py)]; top.Entity() == EntityChip {
					// teleporting onto the player is legal, not a
					// collision; the commit would overwrite the player
					// tile, so save it
					g.teleportedChip = top
				}
				return
			}
		}

		if pos == orig {
			// scanned the whole grid without a destination
			act.x, act.y = px, py
			if act.entity == EntityChip {
				g.flags |= flagChipStuck
			}
			return
		}
	}
}

// slideDir returns the direction a force floor pushes in. For random
// force floors with advance set, the shared direction cursor rotates
// first.
func (g *Game) slideDir(tile Tile, advance bool) Direction {
	if tile == TileForceFloorRandom {
		if advance {
			g.randomSlideDir = g.randomSlideDir.Right()
		}
		return g.randomSlideDir
	}
	return Direction(tile.Variant())
}

// applyIceWallTurn deflects the actor's direction when it sits on an ice
// corner.
func (g *Game) applyIceWallTurn(act *movingActor) {
	tile := g.bottom[cellIndex(act.x, act.y)]
	if tile.IsIceWall() {
		if nd := iceWallTurn[int(act.direction)+int(tile.Variant())*4]; nd >= 0 {
			act.direction = Direction(nd)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
