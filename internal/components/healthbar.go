package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HealthBar is a normalized fill in [0,1], drawn as a strip at its object.
type HealthBar struct {
	engine.BaseComponent
	fill  float32
	Width float32
}

func NewHealthBar() *HealthBar {
	return &HealthBar{fill: 1, Width: 1}
}

func (h *HealthBar) Fill() float32 {
	return h.fill
}

// fillEpsilon absorbs float32 drift so that n hits of 1/n empty the bar.
const fillEpsilon = 1e-5

// SetFill stores v clamped to [0,1] and returns the stored value. Values
// within fillEpsilon of zero are stored as zero.
func (h *HealthBar) SetFill(v float32) float32 {
	if v < fillEpsilon {
		v = 0
	}
	h.fill = Clamp01(v)
	return h.fill
}

// Damage subtracts amount and returns the clamped remainder.
func (h *HealthBar) Damage(amount float32) float32 {
	return h.SetFill(h.fill - amount)
}

func (h *HealthBar) Empty() bool {
	return h.fill <= 0
}

func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (h *HealthBar) Draw() {
	g := h.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}
	pos := g.WorldPosition()
	rl.DrawCubeV(pos, rl.Vector3{X: h.Width, Y: 0.08, Z: 0.02}, rl.DarkGray)
	filled := h.Width * h.fill
	if filled <= 0 {
		return
	}
	offset := rl.Vector3{X: -(h.Width - filled) / 2}
	rl.DrawCubeV(rl.Vector3Add(pos, offset), rl.Vector3{X: filled, Y: 0.1, Z: 0.03}, rl.Red)
}
