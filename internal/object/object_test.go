package object

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/tomz197/eggcatch/internal/scene"
)

func TestEggIntegrate(t *testing.T) {
	egg := NewEgg(1, scene.NewEggMesh(0.18), mgl64.Vec3{0, 3, 0}, mgl64.Vec3{2, 0, 1.2})
	assert.Equal(t, EggSpawned, egg.State)

	egg.Integrate(-9.8, 0.05)

	assert.Equal(t, EggFalling, egg.State)
	assert.InDelta(t, -0.49, egg.Velocity.Y(), 1e-12)
	assert.InDelta(t, 3-0.49*0.05, egg.Position().Y(), 1e-12)
	assert.InDelta(t, 0.1, egg.Node().Rotation().X(), 1e-12)
	assert.InDelta(t, 0.06, egg.Node().Rotation().Z(), 1e-12)
}

func TestEggTerminalStates(t *testing.T) {
	egg := NewEgg(1, scene.NewEggMesh(0.18), mgl64.Vec3{0, 3, 0}, mgl64.Vec3{})
	assert.False(t, egg.IsDestroyed())

	egg.MarkCaught()
	assert.True(t, egg.IsDestroyed())
	assert.Equal(t, "caught", egg.State.String())

	before := egg.Position()
	egg.Integrate(-9.8, 0.05)
	assert.Equal(t, before, egg.Position(), "terminal eggs do not move")
	assert.Equal(t, EggCaught, egg.State)
}

func TestHenBob(t *testing.T) {
	node := scene.NewGroup("hen")
	node.SetPosition(mgl64.Vec3{-3, 3.3, -1.5})
	hen := NewHen(node, 0.03, 2)

	hen.Bob(math.Pi / 4) // sin(pi/2) = 1
	assert.InDelta(t, 3.33, node.Position().Y(), 1e-12)
	assert.Equal(t, -3.0, node.Position().X())

	hen.Bob(0)
	assert.InDelta(t, 3.3, node.Position().Y(), 1e-12)

	drop := hen.DropPoint(mgl64.Vec3{0, -0.45, 0.2})
	assert.InDelta(t, 2.85, drop.Y(), 1e-12)
	assert.InDelta(t, -1.3, drop.Z(), 1e-12)
}

func TestBasketMove(t *testing.T) {
	b := NewBasket(scene.NewGroup("basket"), 0.5, 1.2, 0.2)

	b.Move(1, 0, 0.3, 0, false)
	assert.InDelta(t, 0.3, b.Position().X(), 1e-12)

	b.Move(-1, -1, 0.3, 0, false)
	assert.InDelta(t, 0.0, b.Position().X(), 1e-12)
	assert.InDelta(t, -0.3, b.Position().Z(), 1e-12, "diagonals keep the full per-axis step")

	b.Move(1, 1, math.Sqrt2, 0, true)
	assert.InDelta(t, 1.0, b.Position().X(), 1e-12)
	assert.InDelta(t, 0.7, b.Position().Z(), 1e-12)
}

func TestBasketMoveClampsToBounds(t *testing.T) {
	b := NewBasket(scene.NewGroup("basket"), 0.5, 1.2, 0.2)

	b.Move(1, -1, 50, 20, false)
	assert.Equal(t, 20.0, b.Position().X())
	assert.Equal(t, -20.0, b.Position().Z())

	b.Move(1, 0, 50, 0, false)
	assert.Equal(t, 70.0, b.Position().X(), "zero bounds disables clamping")
}

func TestBasketCatchVolume(t *testing.T) {
	node := scene.NewGroup("basket")
	node.SetPosition(mgl64.Vec3{2, 0, -1})
	b := NewBasket(node, 0.5, 1.2, 0.2)

	v := b.CatchVolume()
	assert.Equal(t, mgl64.Vec3{2, 0.5, -1}, v.Center)
	assert.True(t, v.Contains(mgl64.Vec3{2.5, 0.5, -1.5}))
}
