package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HemisphereLight blends Sky for upward-facing surfaces with Ground for
// downward-facing ones.
type HemisphereLight struct {
	Sky       colorful.Color
	Ground    colorful.Color
	Intensity float64
}

// DirectionalLight shines from Direction (pointing towards the light).
type DirectionalLight struct {
	Direction mgl64.Vec3
	Color     colorful.Color
	Intensity float64
}

// Scene is the root of a scene graph plus its lighting.
type Scene struct {
	*Object
	Background  colorful.Color
	Hemisphere  HemisphereLight
	Directional DirectionalLight
}

// New creates an empty scene with the default sky and lights.
func New() *Scene {
	return &Scene{
		Object:     NewGroup("scene"),
		Background: Hex(0x87ceeb),
		Hemisphere: HemisphereLight{
			Sky:       Hex(0xffffbb),
			Ground:    Hex(0x080820),
			Intensity: 0.9,
		},
		Directional: DirectionalLight{
			Direction: mgl64.Vec3{5, 10, 5}.Normalize(),
			Color:     Hex(0xffffff),
			Intensity: 0.8,
		},
	}
}
