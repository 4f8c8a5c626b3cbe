package scene

import colorful "github.com/lucasb-eyer/go-colorful"

// Material controls how a mesh is shaded.
type Material struct {
	Color       colorful.Color
	DoubleSided bool // Draw faces whose normal points away from the camera
}

// Hex converts a 0xRRGGBB literal to a colour.
func Hex(rgb uint32) colorful.Color {
	return colorful.Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
	}
}

// Standard returns a single-sided material of the given colour.
func Standard(rgb uint32) Material {
	return Material{Color: Hex(rgb)}
}
