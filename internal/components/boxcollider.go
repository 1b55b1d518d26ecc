package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// BoxCollider is an axis-aligned box around the object's world position.
// Rotation is ignored; scale is applied to Size.
type BoxCollider struct {
	engine.BaseComponent
	Size      rl.Vector3
	Offset    rl.Vector3
	IsTrigger bool
}

func NewBoxCollider(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size}
}

func NewBoxTrigger(size rl.Vector3) *BoxCollider {
	return &BoxCollider{Size: size, IsTrigger: true}
}

// GetCenter returns the world-space center of this collider
func (b *BoxCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(b.GetGameObject().WorldPosition(), b.Offset)
}

func (b *BoxCollider) GetWorldSize() rl.Vector3 {
	s := b.GetGameObject().WorldScale()
	return rl.Vector3{X: b.Size.X * s.X, Y: b.Size.Y * s.Y, Z: b.Size.Z * s.Z}
}

func (b *BoxCollider) Trigger() bool {
	return b.IsTrigger
}
