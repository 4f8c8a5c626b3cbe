// Package scene holds the in-memory scene graph the game mutates and the
// renderers draw. Game logic depends only on the Node and Root capability
// interfaces, so it runs without any rendering backend.
package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNotChild is returned when removing a node the root does not hold.
	ErrNotChild = errors.New("scene: node is not a child")
	// ErrForeignNode is returned when a Node from another implementation is
	// attached to an Object.
	ErrForeignNode = errors.New("scene: node does not belong to this graph")
)

// Node is the capability set the game needs from a visual entity.
type Node interface {
	Position() mgl64.Vec3
	SetPosition(p mgl64.Vec3)
	Rotation() mgl64.Vec3 // Euler angles in radians, applied X then Y then Z
	SetRotation(r mgl64.Vec3)
	Visible() bool
	SetVisible(v bool)
	WorldPosition() mgl64.Vec3
}

// Root is a visual container entities are attached to and detached from.
type Root interface {
	Add(n Node) error
	Remove(n Node) error
	Len() int
}
