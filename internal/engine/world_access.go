package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// LayerMask selects which object layers a query considers (bit n = layer n).
type LayerMask uint32

const AllLayers LayerMask = ^LayerMask(0)

// Contains reports whether layer is selected by the mask.
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer > 31 {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// MaskOf builds a mask from layer indices.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l <= 31 {
			m |= 1 << uint(l)
		}
	}
	return m
}

// RaycastResult holds information about a raycast hit.
// Defined here to avoid circular imports with physics package.
type RaycastResult struct {
	GameObject *GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// WorldAccess provides components with access to world-level operations
// without creating circular import dependencies.
type WorldAccess interface {
	Clock() Clock
	SpawnObject(g *GameObject)
	Destroy(g *GameObject)
	// Raycast returns the nearest solid hit. Objects in ignore's hierarchy
	// are skipped; pass nil to consider everything.
	Raycast(origin, direction rl.Vector3, maxDistance float32, mask LayerMask, ignore *GameObject) (RaycastResult, bool)
}
