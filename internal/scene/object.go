package scene

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Object is a scene graph node. With a nil Mesh it acts as a group.
type Object struct {
	Name string
	Mesh *Mesh

	position mgl64.Vec3
	rotation mgl64.Vec3
	scale    mgl64.Vec3
	visible  bool

	parent   *Object
	children []*Object
}

// Mesh pairs a geometry with the material it is drawn with.
type Mesh struct {
	Geometry Geometry
	Material Material
}

var (
	_ Node = (*Object)(nil)
	_ Root = (*Object)(nil)
)

// NewGroup creates an empty, visible group node.
func NewGroup(name string) *Object {
	return &Object{
		Name:    name,
		scale:   mgl64.Vec3{1, 1, 1},
		visible: true,
	}
}

// NewMesh creates a visible node drawing geom with mat.
func NewMesh(name string, geom Geometry, mat Material) *Object {
	o := NewGroup(name)
	o.Mesh = &Mesh{Geometry: geom, Material: mat}
	return o
}

func (o *Object) Position() mgl64.Vec3     { return o.position }
func (o *Object) SetPosition(p mgl64.Vec3) { o.position = p }
func (o *Object) Rotation() mgl64.Vec3     { return o.rotation }
func (o *Object) SetRotation(r mgl64.Vec3) { o.rotation = r }
func (o *Object) Scale() mgl64.Vec3        { return o.scale }
func (o *Object) SetScale(s mgl64.Vec3)    { o.scale = s }
func (o *Object) Visible() bool            { return o.visible }
func (o *Object) SetVisible(v bool)        { o.visible = v }
func (o *Object) Parent() *Object          { return o.parent }
func (o *Object) Children() []*Object      { return o.children }
func (o *Object) Len() int                 { return len(o.children) }

// Add attaches n as the last child, detaching it from any previous parent.
func (o *Object) Add(n Node) error {
	child, ok := n.(*Object)
	if !ok {
		return ErrForeignNode
	}
	if child.parent != nil {
		_ = child.parent.Remove(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	return nil
}

// MustAdd attaches children during scene construction, where a failure is a
// programming error.
func (o *Object) MustAdd(children ...*Object) *Object {
	for _, c := range children {
		if err := o.Add(c); err != nil {
			panic(err)
		}
	}
	return o
}

// Remove detaches n from o.
func (o *Object) Remove(n Node) error {
	child, ok := n.(*Object)
	if !ok {
		return ErrForeignNode
	}
	i := slices.Index(o.children, child)
	if i < 0 {
		return ErrNotChild
	}
	o.children = slices.Delete(o.children, i, i+1)
	child.parent = nil
	return nil
}

// LocalMatrix composes translation, XYZ Euler rotation and scale.
func (o *Object) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(o.position.X(), o.position.Y(), o.position.Z())
	r := mgl64.HomogRotate3DX(o.rotation.X()).
		Mul4(mgl64.HomogRotate3DY(o.rotation.Y())).
		Mul4(mgl64.HomogRotate3DZ(o.rotation.Z()))
	s := mgl64.Scale3D(o.scale.X(), o.scale.Y(), o.scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix is the product of every ancestor's local matrix and o's own.
func (o *Object) WorldMatrix() mgl64.Mat4 {
	m := o.LocalMatrix()
	for p := o.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

// WorldPosition returns o's origin in world space.
func (o *Object) WorldPosition() mgl64.Vec3 {
	return o.WorldMatrix().Col(3).Vec3()
}

// Walk visits o and its visible descendants depth-first with their world
// matrices. Invisible subtrees are skipped entirely.
func (o *Object) Walk(fn func(obj *Object, world mgl64.Mat4)) {
	parent := mgl64.Ident4()
	if o.parent != nil {
		parent = o.parent.WorldMatrix()
	}
	o.walk(parent, fn)
}

func (o *Object) walk(parent mgl64.Mat4, fn func(*Object, mgl64.Mat4)) {
	if !o.visible {
		return
	}
	world := parent.Mul4(o.LocalMatrix())
	fn(o, world)
	for _, c := range o.children {
		c.walk(world, fn)
	}
}
