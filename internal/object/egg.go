package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/physics"
	"github.com/tomz197/eggcatch/internal/scene"
)

// EggState is a step in an egg's lifecycle: Spawned → Falling → {Caught | Missed}.
type EggState int

const (
	EggSpawned EggState = iota // Created, not yet stepped
	EggFalling                 // Integrated every frame
	EggCaught                  // Landed in the basket (terminal)
	EggMissed                  // Fell below the floor (terminal)
)

func (s EggState) String() string {
	switch s {
	case EggSpawned:
		return "spawned"
	case EggFalling:
		return "falling"
	case EggCaught:
		return "caught"
	case EggMissed:
		return "missed"
	default:
		return "unknown"
	}
}

// Egg is a falling projectile dropped by the hen.
type Egg struct {
	ID       int
	Velocity mgl64.Vec3
	Spin     mgl64.Vec3 // Cosmetic rotation rate (rad/s per axis)
	State    EggState
	node     scene.Node
}

var (
	_ Entity       = (*Egg)(nil)
	_ Destructible = (*Egg)(nil)
)

// NewEgg wraps node as an egg at rest at pos.
func NewEgg(id int, node scene.Node, pos, spin mgl64.Vec3) *Egg {
	node.SetPosition(pos)
	return &Egg{
		ID:    id,
		Spin:  spin,
		State: EggSpawned,
		node:  node,
	}
}

// Node returns the egg's visual.
func (e *Egg) Node() scene.Node { return e.node }

// Position is the egg's position in world space.
func (e *Egg) Position() mgl64.Vec3 { return e.node.Position() }

// Integrate applies gravity for dt, moves the egg and advances its spin.
func (e *Egg) Integrate(gravity, dt float64) {
	if e.IsDestroyed() {
		return
	}
	e.State = EggFalling

	pos, vel := physics.Integrate(e.node.Position(), e.Velocity, gravity, dt)
	e.Velocity = vel
	e.node.SetPosition(pos)
	e.node.SetRotation(e.node.Rotation().Add(e.Spin.Mul(dt)))
}

// MarkCaught moves the egg to the caught terminal state.
func (e *Egg) MarkCaught() { e.State = EggCaught }

// MarkMissed moves the egg to the missed terminal state.
func (e *Egg) MarkMissed() { e.State = EggMissed }

// IsDestroyed reports whether the egg was caught or missed.
func (e *Egg) IsDestroyed() bool {
	return e.State == EggCaught || e.State == EggMissed
}
