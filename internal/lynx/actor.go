package lynx

// Entity is the kind of an actor. Values leave the two low bits free for
// the facing direction; like tiles, the numeric codes are exact because the
// wall predicates rely on them.
type Entity uint8

const (
	EntityNone         Entity = 0x00
	EntityChip         Entity = 0x04
	EntityStatic       Entity = 0x0c
	EntityBlockGhost   Entity = 0x10
	EntityBlock        Entity = 0x14
	EntityBug          Entity = 0x18
	EntityParamecium   Entity = 0x1c
	EntityGlider       Entity = 0x20
	EntityFireball     Entity = 0x24
	EntityBall         Entity = 0x28
	EntityBlob         Entity = 0x2c
	EntityTank         Entity = 0x30
	EntityTankReversed Entity = 0x34
	EntityWalker       Entity = 0x38
	EntityTeeth        Entity = 0x3c
)

// IsTank matches the tank and the reversed tank.
func (e Entity) IsTank() bool {
	return e&0x38 == 0x30
}

// IsBlock matches the block and the ghost block.
func (e Entity) IsBlock() bool {
	return e&0x38 == 0x10
}

// ReverseTank flips between tank and reversed tank.
func (e Entity) ReverseTank() Entity {
	return e ^ 0x04
}

func (e Entity) IsMonsterOrBlock() bool {
	return e >= EntityBlockGhost
}

func (e Entity) IsMonster() bool {
	return e > EntityBlock
}

// OnActorList reports whether the entity joins the actor list when a level
// starts. The player is handled separately.
func (e Entity) OnActorList() bool {
	return e >= EntityBlock
}

var entityNames = [16]string{
	"none", "chip", "unknown", "static",
	"block_ghost", "block", "bug", "paramecium",
	"glider", "fireball", "ball", "blob",
	"tank", "tank_reversed", "walker", "teeth",
}

func (e Entity) String() string {
	return entityNames[(e>>2)&0xf]
}

// Actor is a top-layer grid value: an entity combined with its 2-bit facing
// direction. ActorNone marks an empty cell and ActorAnimation a cell where a
// death animation is playing.
type Actor uint8

const (
	ActorNone      Actor = 0x00
	ActorAnimation Actor = 0x01

	// Decorative static actors, rendered but never simulated.
	ActorStaticFireball = Actor(EntityStatic) | Actor(North)
	ActorStaticBall     = Actor(EntityStatic) | Actor(West)
	ActorStaticBlob     = Actor(EntityStatic) | Actor(South)
	ActorStaticBlock    = Actor(EntityStatic) | Actor(East)
)

// MakeActor combines an entity and a direction into a top-layer value.
func MakeActor(e Entity, d Direction) Actor {
	return Actor(uint8(e) | uint8(d))
}

func (a Actor) Entity() Entity {
	return Entity(a &^ 0x3)
}

func (a Actor) Direction() Direction {
	return Direction(a & 0x3)
}

// InDirection returns the same entity facing d.
func (a Actor) InDirection(d Direction) Actor {
	return Actor(uint8(a)&^0x3 | uint8(d))
}

// WithEntity returns e facing the same direction as a.
func (a Actor) WithEntity(e Entity) Actor {
	return Actor(uint8(e) | uint8(a)&0x3)
}

// IsBlock matches static, ghost and regular blocks regardless of direction.
func (a Actor) IsBlock() bool {
	return a >= 0x0f && a <= 0x17
}

// String formats the actor as "entity (direction)", the form used by state
// dumps.
func (a Actor) String() string {
	return a.Entity().String() + " (" + a.Direction().String() + ")"
}

// ActorState is the 2-bit per-tick state stored in an actor-list entry.
type ActorState uint8

const (
	// StateNone is the default state.
	StateNone ActorState = 0x0
	// StateHidden marks a dead actor. Hidden entries are skipped during
	// stepping and reused when spawning a new actor.
	StateHidden ActorState = 0x1
	// StateMoved marks an actor that has chosen (or been forced into) a
	// move during the current tick.
	StateMoved ActorState = 0x2
	// StateTeleported marks an actor that was just teleported.
	StateTeleported ActorState = 0x3

	// stateDied marks a dying actor while a move resolves: the tile is
	// replaced by an animation. Masks down to StateHidden on writeback.
	stateDied ActorState = 0x5
	// stateGhost marks a ghost block leaving the actor list without an
	// animation. Masks down to StateHidden on writeback.
	stateGhost ActorState = 0x9
)

// ActiveActor is an actor-list entry. It stores only position and move
// timing: entity and direction always live in the top layer at (X, Y).
type ActiveActor struct {
	X, Y  uint8
	Step  int8
	State ActorState
}

// movingActor is a working copy of one actor used while resolving a single
// move. Changes are only visible once written back through commitActor,
// on every exit path.
type movingActor struct {
	index     int
	x, y      int
	step      int8
	entity    Entity
	direction Direction
	state     ActorState
}

func (m *movingActor) actor() Actor {
	return MakeActor(m.entity, m.direction)
}
