package components

import (
	"math"

	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// FPSController owns the player's aim pose. Input is pushed in through Look
// and Move; Update keeps the Rig child aligned with the current yaw so hold
// anchors parented under it follow the view.
type FPSController struct {
	engine.BaseComponent
	Yaw       float32
	Pitch     float32
	MoveSpeed float32
	LookSpeed float32
	EyeHeight float32
	Rig       *engine.GameObject
}

func NewFPSController() *FPSController {
	return &FPSController{
		MoveSpeed: 5.0,
		LookSpeed: 0.1,
		EyeHeight: 1.6,
	}
}

func (f *FPSController) Start() {
	f.syncRig()
}

func (f *FPSController) Update(deltaTime float32) {
	f.syncRig()
}

// Look applies a mouse delta in pixels.
func (f *FPSController) Look(dx, dy float32) {
	f.Yaw += dx * f.LookSpeed
	f.Pitch -= dy * f.LookSpeed
	if f.Pitch > 89 {
		f.Pitch = 89
	}
	if f.Pitch < -89 {
		f.Pitch = -89
	}
	f.syncRig()
}

// Move walks on the horizontal plane. forward and strafe are in [-1,1].
func (f *FPSController) Move(forward, strafe, deltaTime float32) {
	g := f.GetGameObject()
	if g == nil {
		return
	}
	fwd, right := f.getDirections()
	dir := rl.Vector3Add(rl.Vector3Scale(fwd, forward), rl.Vector3Scale(right, strafe))
	if l := rl.Vector3Length(dir); l > 0 {
		dir = rl.Vector3Scale(dir, 1/l)
	}
	g.Transform.Position = rl.Vector3Add(g.Transform.Position, rl.Vector3Scale(dir, f.MoveSpeed*deltaTime))
}

func (f *FPSController) syncRig() {
	if f.Rig == nil {
		return
	}
	f.Rig.Transform.Position = rl.Vector3{Y: f.EyeHeight}
	f.Rig.Transform.Rotation = rl.Vector3{Y: -f.Yaw}
}

func (f *FPSController) getDirections() (forward, right rl.Vector3) {
	yawRad := float64(f.Yaw) * math.Pi / 180
	forward = rl.Vector3{
		X: float32(math.Cos(yawRad)),
		Z: float32(math.Sin(yawRad)),
	}
	right = rl.Vector3{
		X: float32(-math.Sin(yawRad)),
		Z: float32(math.Cos(yawRad)),
	}
	return
}

func (f *FPSController) GetLookDirection() rl.Vector3 {
	yawRad := float64(f.Yaw) * math.Pi / 180
	pitchRad := float64(f.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
}

func (f *FPSController) GetEyePosition() rl.Vector3 {
	g := f.GetGameObject()
	if g == nil {
		return rl.Vector3{Y: f.EyeHeight}
	}
	return rl.Vector3Add(g.WorldPosition(), rl.Vector3{Y: f.EyeHeight})
}
