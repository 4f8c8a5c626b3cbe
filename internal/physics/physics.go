// Package physics provides the kinematics and catch-volume tests used by the
// egg update step.
package physics

import "github.com/go-gl/mathgl/mgl64"

// ClampDelta bounds a frame delta to [0, max] so a slow frame cannot produce
// an unstable integration step.
func ClampDelta(dt, max float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > max {
		return max
	}
	return dt
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Integrate advances a falling body by one step of semi-implicit Euler:
// gravity is applied to the vertical velocity first, then the updated
// velocity moves the position.
func Integrate(pos, vel mgl64.Vec3, gravity, dt float64) (mgl64.Vec3, mgl64.Vec3) {
	vel[1] += gravity * dt
	pos = pos.Add(vel.Mul(dt))
	return pos, vel
}

// CatchVolume is an axis-aligned box centred on Center: Radius half-width on
// x and z, Band half-height on y.
type CatchVolume struct {
	Center mgl64.Vec3
	Radius float64
	Band   float64
}

// Contains reports whether p lies strictly inside the volume.
func (v CatchVolume) Contains(p mgl64.Vec3) bool {
	return abs(p.X()-v.Center.X()) < v.Radius &&
		abs(p.Z()-v.Center.Z()) < v.Radius &&
		p.Y() < v.Center.Y()+v.Band &&
		p.Y() > v.Center.Y()-v.Band
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
