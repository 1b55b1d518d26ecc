package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        70.0,
		Projection: rl.CameraPerspective,
	}
}

// Camera3D builds the raylib camera for the given aim pose.
func (c *Camera) Camera3D(look engine.LookProvider) rl.Camera3D {
	eye := look.GetEyePosition()
	return rl.Camera3D{
		Position:   eye,
		Target:     rl.Vector3Add(eye, look.GetLookDirection()),
		Up:         rl.Vector3{Y: 1},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}
