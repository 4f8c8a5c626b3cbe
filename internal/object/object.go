// Package object defines the game entities: the hen, the basket and the eggs.
// Entities hold a scene.Node for their visual and carry the per-entity
// gameplay state the update step reads and mutates.
package object

import "github.com/tomz197/eggcatch/internal/scene"

// Entity is anything the game loop positions through a scene node.
type Entity interface {
	Node() scene.Node
}

// Destructible is implemented by entities that leave the live collection.
type Destructible interface {
	// IsDestroyed reports whether the entity reached a terminal state.
	IsDestroyed() bool
}
