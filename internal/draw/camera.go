package draw

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/config"
)

// Camera is a perspective camera projecting world space onto a pixel grid.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FOV    float64 // Vertical, degrees
	Near   float64
	Far    float64

	width, height int
	viewProj      mgl64.Mat4
	focal         float64 // Pixels per world unit at distance 1
}

// NewCamera creates a camera from tuning. Call Resize before projecting.
func NewCamera(t config.Camera) *Camera {
	c := &Camera{
		Eye:    t.Position,
		Target: t.Target,
		Up:     mgl64.Vec3{0, 1, 0},
		FOV:    t.FOV,
		Near:   t.Near,
		Far:    t.Far,
	}
	c.Resize(1, 1)
	return c
}

// Resize sets the render target size and recomputes the projection.
func (c *Camera) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	c.width, c.height = width, height

	fovy := mgl64.DegToRad(c.FOV)
	aspect := float64(width) / float64(height)
	proj := mgl64.Perspective(fovy, aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)
	c.viewProj = proj.Mul4(view)
	c.focal = float64(height) / 2 / math.Tan(fovy/2)
}

// Size returns the render target size.
func (c *Camera) Size() (width, height int) {
	return c.width, c.height
}

// Focal returns the projected size in pixels of one world unit at distance 1.
func (c *Camera) Focal() float64 {
	return c.focal
}

// Project maps a world point to pixel coordinates (origin top-left, y down).
// depth is the distance along the view axis; ok is false for points behind
// the near plane.
func (c *Camera) Project(p mgl64.Vec3) (pt Point, depth float64, ok bool) {
	clip := c.Clip(p)
	if clip.W() < c.Near {
		return Point{}, 0, false
	}
	return c.Screen(clip), clip.W(), true
}

// Clip returns p in homogeneous clip coordinates. W is the view depth.
func (c *Camera) Clip(p mgl64.Vec3) mgl64.Vec4 {
	return c.viewProj.Mul4x1(p.Vec4(1))
}

// Screen maps a clip-space point with a positive W to pixel coordinates.
func (c *Camera) Screen(clip mgl64.Vec4) Point {
	w := clip.W()
	return Point{
		X: (clip.X()/w + 1) / 2 * float64(c.width),
		Y: (1 - clip.Y()/w) / 2 * float64(c.height),
	}
}

// ClipNear clips a convex polygon given in clip space against the near
// plane (Sutherland-Hodgman) and appends the result to dst. Vertices on or
// in front of the plane are kept; edges crossing it are cut at W == Near.
func (c *Camera) ClipNear(dst, poly []mgl64.Vec4) []mgl64.Vec4 {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		aIn, bIn := a.W() >= c.Near, b.W() >= c.Near
		if aIn {
			dst = append(dst, a)
		}
		if aIn != bIn {
			t := (c.Near - a.W()) / (b.W() - a.W())
			cut := a.Add(b.Sub(a).Mul(t))
			cut[3] = c.Near
			dst = append(dst, cut)
		}
	}
	return dst
}
