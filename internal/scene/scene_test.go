package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomz197/eggcatch/internal/config"
)

func vecInDelta(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "component %d of %v", i, got)
	}
}

func TestAddRemove(t *testing.T) {
	root := NewGroup("root")
	egg := NewEggMesh(0.18)

	require.NoError(t, root.Add(egg))
	assert.Equal(t, 1, root.Len())
	assert.Same(t, root, egg.Parent())

	require.NoError(t, root.Remove(egg))
	assert.Equal(t, 0, root.Len())
	assert.Nil(t, egg.Parent())

	assert.ErrorIs(t, root.Remove(egg), ErrNotChild)
}

func TestAddReparents(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	child := NewGroup("child")

	require.NoError(t, a.Add(child))
	require.NoError(t, b.Add(child))

	assert.Equal(t, 0, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.Same(t, b, child.Parent())
}

type foreignNode struct{ Node }

func TestAddForeignNode(t *testing.T) {
	root := NewGroup("root")
	assert.ErrorIs(t, root.Add(foreignNode{}), ErrForeignNode)
	assert.ErrorIs(t, root.Remove(foreignNode{}), ErrForeignNode)
}

func TestWorldPositionComposesParents(t *testing.T) {
	parent := NewGroup("parent")
	parent.SetPosition(mgl64.Vec3{1, 2, 3})
	parent.SetRotation(mgl64.Vec3{0, math.Pi / 2, 0})

	child := NewGroup("child")
	child.SetPosition(mgl64.Vec3{1, 0, 0})
	parent.MustAdd(child)

	// A quarter turn about y maps +x to -z.
	vecInDelta(t, mgl64.Vec3{1, 2, 2}, child.WorldPosition())
}

func TestWalkSkipsInvisibleSubtrees(t *testing.T) {
	root := NewGroup("root")
	hidden := NewGroup("hidden")
	hidden.MustAdd(NewGroup("grandchild"))
	shown := NewGroup("shown")
	root.MustAdd(hidden, shown)
	hidden.SetVisible(false)

	var names []string
	root.Walk(func(o *Object, _ mgl64.Mat4) { names = append(names, o.Name) })
	assert.Equal(t, []string{"root", "shown"}, names)
}

func TestBuild(t *testing.T) {
	tun := config.Default()
	w := Build(tun)

	assert.Equal(t, 4, w.Scene.Len())
	vecInDelta(t, tun.Hen.Position, w.Hen.WorldPosition())
	vecInDelta(t, mgl64.Vec3{}, w.Basket.WorldPosition())
	assert.Len(t, w.Hen.Children(), 4)
	assert.Len(t, w.Basket.Children(), 2)

	// The ground plane is rotated to face up.
	n := w.Ground.WorldMatrix().Mat3().Mul3x1(Plane{}.Faces()[0].Normal)
	vecInDelta(t, mgl64.Vec3{0, 1, 0}, n)
}

func TestGeometryFaces(t *testing.T) {
	assert.Nil(t, Sphere{Radius: 1}.Faces())
	assert.Len(t, Box{Width: 1, Height: 1, Depth: 1}.Faces(), 6)
	assert.Len(t, Cylinder{RadiusTop: 1, RadiusBottom: 1, Height: 1, Segments: 12}.Faces(), 14)
	assert.Len(t, Cylinder{RadiusTop: 1, RadiusBottom: 1, Height: 1, Segments: 12, OpenEnded: true}.Faces(), 12)
	assert.Len(t, Cone(1, 1, 8).Faces(), 9, "a cone has no top cap")

	disc := Circle{Radius: 2, Segments: 16}.Faces()
	require.Len(t, disc, 1)
	for _, p := range disc[0].Points {
		assert.InDelta(t, 2.0, p.Len(), 1e-9)
	}
}

func TestCylinderSideNormalsPointOutward(t *testing.T) {
	for _, f := range (Cylinder{RadiusTop: 1, RadiusBottom: 1, Height: 2, Segments: 8, OpenEnded: true}).Faces() {
		var centre mgl64.Vec3
		for _, p := range f.Points {
			centre = centre.Add(p)
		}
		centre = centre.Mul(1 / float64(len(f.Points)))
		assert.Greater(t, f.Normal.Dot(centre), 0.0)
	}
}

func TestHex(t *testing.T) {
	c := Hex(0xff8000)
	r, g, b := c.RGB255()
	assert.Equal(t, []uint8{255, 128, 0}, []uint8{r, g, b})
}
