package world

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PlayerCollision keeps the player on the floor plane and out of static
// geometry after FPSController movement.
type PlayerCollision struct {
	engine.BaseComponent
	Physics *physics.PhysicsWorld
	FloorY  float32
	Size    rl.Vector3
}

func NewPlayerCollision(p *physics.PhysicsWorld) *PlayerCollision {
	return &PlayerCollision{Physics: p, Size: rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6}}
}

func (p *PlayerCollision) Update(deltaTime float32) {
	g := p.GetGameObject()
	if g == nil {
		return
	}
	if g.Transform.Position.Y < p.FloorY {
		g.Transform.Position.Y = p.FloorY
	}
	if p.Physics == nil {
		return
	}

	size := p.Size
	if col := engine.GetComponent[*components.BoxCollider](g); col != nil {
		size = col.GetWorldSize()
	}
	center := rl.Vector3Add(g.Transform.Position, rl.Vector3{Y: size.Y / 2})
	push := p.Physics.PushOut(physics.NewAABBFromCenter(center, size), g)
	// Walking never lifts the player onto obstacles.
	if push.Y > 0 && g.Transform.Position.Y <= p.FloorY {
		push.Y = 0
	}
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, push)
}
