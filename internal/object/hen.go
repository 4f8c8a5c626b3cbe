package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/eggcatch/internal/scene"
)

// Hen is the egg dropper. It only idles: a small vertical bob around BaseY.
type Hen struct {
	BaseY     float64
	Amplitude float64
	Frequency float64 // Radians per second
	node      scene.Node
}

var _ Entity = (*Hen)(nil)

// NewHen takes BaseY from the node's current height.
func NewHen(node scene.Node, amplitude, frequency float64) *Hen {
	return &Hen{
		BaseY:     node.Position().Y(),
		Amplitude: amplitude,
		Frequency: frequency,
		node:      node,
	}
}

func (h *Hen) Node() scene.Node { return h.node }

// Bob sets the hen's height for the given total elapsed time.
func (h *Hen) Bob(elapsed float64) {
	p := h.node.Position()
	h.node.SetPosition(mgl64.Vec3{p.X(), h.BaseY + math.Sin(elapsed*h.Frequency)*h.Amplitude, p.Z()})
}

// DropPoint is where a new egg appears: the hen's world position plus offset.
func (h *Hen) DropPoint(offset mgl64.Vec3) mgl64.Vec3 {
	return h.node.WorldPosition().Add(offset)
}
