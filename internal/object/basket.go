package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/physics"
	"github.com/tomz197/eggcatch/internal/scene"
)

// Basket is the player-controlled catcher. It moves on the x/z plane only.
type Basket struct {
	CatchHeight float64 // Catch band centre above the basket origin
	CatchRadius float64
	CatchBand   float64
	node        scene.Node
}

var _ Entity = (*Basket)(nil)

func NewBasket(node scene.Node, catchHeight, catchRadius, catchBand float64) *Basket {
	return &Basket{
		CatchHeight: catchHeight,
		CatchRadius: catchRadius,
		CatchBand:   catchBand,
		node:        node,
	}
}

func (b *Basket) Node() scene.Node { return b.node }

func (b *Basket) Position() mgl64.Vec3 { return b.node.Position() }

// Move shifts the basket by step along each axis whose direction is non-zero.
// dirX and dirZ are in {-1, 0, 1}. Each axis moves a full step on its own, so
// a diagonal covers more ground than a straight move unless normalize is set.
// A positive bounds clamps both axes to [-bounds, bounds].
func (b *Basket) Move(dirX, dirZ, step, bounds float64, normalize bool) {
	if dirX == 0 && dirZ == 0 {
		return
	}
	if normalize && dirX != 0 && dirZ != 0 {
		step /= math.Sqrt2
	}

	p := b.node.Position()
	x := p.X() + dirX*step
	z := p.Z() + dirZ*step
	if bounds > 0 {
		x = physics.Clamp(x, -bounds, bounds)
		z = physics.Clamp(z, -bounds, bounds)
	}
	b.node.SetPosition(mgl64.Vec3{x, p.Y(), z})
}

// CatchVolume returns the basket's current catch box.
func (b *Basket) CatchVolume() physics.CatchVolume {
	p := b.node.Position()
	return physics.CatchVolume{
		Center: mgl64.Vec3{p.X(), p.Y() + b.CatchHeight, p.Z()},
		Radius: b.CatchRadius,
		Band:   b.CatchBand,
	}
}
