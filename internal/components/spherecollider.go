package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	engine.BaseComponent
	Radius    float32
	Offset    rl.Vector3
	IsTrigger bool
}

func NewSphereCollider(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius}
}

func NewSphereTrigger(radius float32) *SphereCollider {
	return &SphereCollider{Radius: radius, IsTrigger: true}
}

// GetCenter returns the world-space center of this collider
func (s *SphereCollider) GetCenter() rl.Vector3 {
	return rl.Vector3Add(s.GetGameObject().WorldPosition(), s.Offset)
}

// GetWorldRadius scales the radius by the largest world scale axis.
func (s *SphereCollider) GetWorldRadius() float32 {
	sc := s.GetGameObject().WorldScale()
	m := sc.X
	if sc.Y > m {
		m = sc.Y
	}
	if sc.Z > m {
		m = sc.Z
	}
	return s.Radius * m
}

func (s *SphereCollider) Trigger() bool {
	return s.IsTrigger
}
