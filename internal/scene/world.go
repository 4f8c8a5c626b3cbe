package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/config"
)

// World is the static set piece the game loop animates.
type World struct {
	Scene  *Scene
	Ground *Object
	Rod    *Object
	Hen    *Object
	Basket *Object
}

// Build assembles the ground, rod, hen and basket. The hen is placed at the
// tuned position; the basket starts at the origin.
func Build(t config.Tuning) *World {
	sc := New()

	ground := NewMesh("ground", Plane{Width: 40, Height: 40}, Standard(0x6b8e23))
	ground.SetRotation(mgl64.Vec3{-math.Pi / 2, 0, 0})

	rod := NewMesh("rod", Cylinder{RadiusTop: 0.08, RadiusBottom: 0.08, Height: 10, Segments: 12}, Standard(0x8b5a2b))
	rod.SetRotation(mgl64.Vec3{0, 0, math.Pi / 2})
	rod.SetPosition(mgl64.Vec3{0, 3, -1.5})

	hen := newHen()
	hen.SetPosition(t.Hen.Position)

	basket := newBasket()

	sc.MustAdd(ground, rod, hen, basket)

	return &World{
		Scene:  sc,
		Ground: ground,
		Rod:    rod,
		Hen:    hen,
		Basket: basket,
	}
}

func newHen() *Object {
	body := NewMesh("hen.body", Sphere{Radius: 0.8}, Standard(0xfff1c9))
	body.SetScale(mgl64.Vec3{1.4, 1.05, 0.95})

	head := NewMesh("hen.head", Sphere{Radius: 0.35}, Standard(0xffffff))
	head.SetPosition(mgl64.Vec3{0.95, 0.15, 0})

	beak := NewMesh("hen.beak", Cone(0.13, 0.3, 8), Standard(0xffa500))
	beak.SetRotation(mgl64.Vec3{0, 0, math.Pi / 2})
	beak.SetPosition(mgl64.Vec3{1.16, 0.15, 0})

	wing := NewMesh("hen.wing", Box{Width: 0.7, Height: 0.35, Depth: 0.02}, Standard(0xf5d6b0))
	wing.SetPosition(mgl64.Vec3{0, 0.05, 0.45})
	wing.SetRotation(mgl64.Vec3{0, 0, -0.6})

	return NewGroup("hen").MustAdd(body, head, beak, wing)
}

func newBasket() *Object {
	body := NewMesh("basket.body",
		Cylinder{RadiusTop: 1.2, RadiusBottom: 1.2, Height: 0.6, Segments: 24, OpenEnded: true},
		Material{Color: Hex(0x8b4513), DoubleSided: true},
	)
	body.SetPosition(mgl64.Vec3{0, 0.35, 0})

	base := NewMesh("basket.base", Circle{Radius: 1.2, Segments: 24}, Standard(0x5c3317))
	base.SetRotation(mgl64.Vec3{-math.Pi / 2, 0, 0})
	base.SetPosition(mgl64.Vec3{0, 0.05, 0})

	return NewGroup("basket").MustAdd(body, base)
}

// NewEggMesh builds an egg: a sphere stretched 1.2x along y.
func NewEggMesh(radius float64) *Object {
	egg := NewMesh("egg", Sphere{Radius: radius}, Standard(0xfffff0))
	egg.SetScale(mgl64.Vec3{1, 1.2, 1})
	return egg
}
