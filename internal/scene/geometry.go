package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Face is a flat convex polygon in the geometry's local space.
type Face struct {
	Points []mgl64.Vec3
	Normal mgl64.Vec3
}

// Geometry describes a primitive shape. Faces returns its polygons in local
// space; shapes without polygons (spheres) are drawn analytically.
type Geometry interface {
	Faces() []Face
}

// Sphere is centred on the origin.
type Sphere struct {
	Radius float64
}

func (Sphere) Faces() []Face { return nil }

// Box is centred on the origin with the given full extents.
type Box struct {
	Width, Height, Depth float64
}

func (b Box) Faces() []Face {
	x, y, z := b.Width/2, b.Height/2, b.Depth/2
	v := func(sx, sy, sz float64) mgl64.Vec3 { return mgl64.Vec3{sx * x, sy * y, sz * z} }
	return []Face{
		{Points: []mgl64.Vec3{v(1, -1, -1), v(1, 1, -1), v(1, 1, 1), v(1, -1, 1)}, Normal: mgl64.Vec3{1, 0, 0}},
		{Points: []mgl64.Vec3{v(-1, -1, 1), v(-1, 1, 1), v(-1, 1, -1), v(-1, -1, -1)}, Normal: mgl64.Vec3{-1, 0, 0}},
		{Points: []mgl64.Vec3{v(-1, 1, -1), v(-1, 1, 1), v(1, 1, 1), v(1, 1, -1)}, Normal: mgl64.Vec3{0, 1, 0}},
		{Points: []mgl64.Vec3{v(-1, -1, 1), v(-1, -1, -1), v(1, -1, -1), v(1, -1, 1)}, Normal: mgl64.Vec3{0, -1, 0}},
		{Points: []mgl64.Vec3{v(-1, -1, 1), v(1, -1, 1), v(1, 1, 1), v(-1, 1, 1)}, Normal: mgl64.Vec3{0, 0, 1}},
		{Points: []mgl64.Vec3{v(1, -1, -1), v(-1, -1, -1), v(-1, 1, -1), v(1, 1, -1)}, Normal: mgl64.Vec3{0, 0, -1}},
	}
}

// Cylinder runs along the y axis, centred on the origin. A zero RadiusTop
// makes a cone. OpenEnded omits both caps.
type Cylinder struct {
	RadiusTop    float64
	RadiusBottom float64
	Height       float64
	Segments     int
	OpenEnded    bool
}

// Cone returns a cylinder tapering to a point at +y.
func Cone(radius, height float64, segments int) Cylinder {
	return Cylinder{RadiusBottom: radius, Height: height, Segments: segments}
}

func (c Cylinder) Faces() []Face {
	n := max(c.Segments, 3)
	half := c.Height / 2
	top := ring(c.RadiusTop, half, n)
	bottom := ring(c.RadiusBottom, -half, n)

	faces := make([]Face, 0, n+2)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		mid := (float64(i) + 0.5) / float64(n) * 2 * math.Pi
		// Slant normal for tapered sides.
		slope := (c.RadiusBottom - c.RadiusTop) / c.Height
		normal := mgl64.Vec3{math.Sin(mid), slope, math.Cos(mid)}.Normalize()
		faces = append(faces, Face{
			Points: []mgl64.Vec3{bottom[i], bottom[j], top[j], top[i]},
			Normal: normal,
		})
	}
	if c.OpenEnded {
		return faces
	}
	if c.RadiusTop > 0 {
		faces = append(faces, Face{Points: top, Normal: mgl64.Vec3{0, 1, 0}})
	}
	if c.RadiusBottom > 0 {
		faces = append(faces, Face{Points: reversed(bottom), Normal: mgl64.Vec3{0, -1, 0}})
	}
	return faces
}

// Plane lies in the local XY plane facing +z.
type Plane struct {
	Width, Height float64
}

func (p Plane) Faces() []Face {
	x, y := p.Width/2, p.Height/2
	return []Face{{
		Points: []mgl64.Vec3{{-x, -y, 0}, {x, -y, 0}, {x, y, 0}, {-x, y, 0}},
		Normal: mgl64.Vec3{0, 0, 1},
	}}
}

// Circle is a flat disc in the local XY plane facing +z.
type Circle struct {
	Radius   float64
	Segments int
}

func (c Circle) Faces() []Face {
	n := max(c.Segments, 3)
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = mgl64.Vec3{c.Radius * math.Cos(a), c.Radius * math.Sin(a), 0}
	}
	return []Face{{Points: pts, Normal: mgl64.Vec3{0, 0, 1}}}
}

// ring returns n points on a horizontal circle of radius r at height y,
// with the same angular convention as the side faces (x = sin, z = cos).
func ring(r, y float64, n int) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, n)
	for i := range pts {
		a := float64(i) / float64(n) * 2 * math.Pi
		pts[i] = mgl64.Vec3{r * math.Sin(a), y, r * math.Cos(a)}
	}
	return pts
}

func reversed(pts []mgl64.Vec3) []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
