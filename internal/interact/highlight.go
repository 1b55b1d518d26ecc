package interact

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Emphasizer applies visual emphasis to an object and returns the function
// that puts every touched surface back exactly as it was.
type Emphasizer interface {
	Emphasize(obj *engine.GameObject) (restore func())
}

// HighlightController keeps at most one object emphasized.
type HighlightController struct {
	Emphasis Emphasizer
	Log      zerolog.Logger
	// Changed fires with the newly highlighted object (nil when cleared).
	Changed engine.EventWithArg[*engine.GameObject]

	current *engine.GameObject
	restore func()
}

func NewHighlightController(e Emphasizer) *HighlightController {
	return &HighlightController{Emphasis: e, Log: zerolog.Nop()}
}

// SetCandidate moves the highlight to obj. Repeating the current candidate
// is a no-op.
func (h *HighlightController) SetCandidate(obj *engine.GameObject) {
	if obj == h.current {
		return
	}
	h.release()
	if obj != nil && h.Emphasis != nil {
		h.current = obj
		h.restore = h.Emphasis.Emphasize(obj)
		h.Log.Debug().Str("object", obj.Name).Msg("highlight")
	}
	h.Changed.Invoke(h.current)
}

// Clear restores and forgets the current highlight.
func (h *HighlightController) Clear() {
	if h.current == nil {
		return
	}
	h.release()
	h.Changed.Invoke(nil)
}

func (h *HighlightController) Current() *engine.GameObject {
	return h.current
}

func (h *HighlightController) release() {
	if h.restore != nil {
		h.restore()
	}
	h.current = nil
	h.restore = nil
}

// MaterialEmphasizer tints every MeshRenderer under the object toward Color
// and switches on emission.
type MaterialEmphasizer struct {
	Color         rl.Color
	Blend         float32 // 0 keeps the base tint, 1 replaces it
	EmissionScale float32
}

func NewMaterialEmphasizer() *MaterialEmphasizer {
	return &MaterialEmphasizer{
		Color:         rl.Yellow,
		Blend:         0.9,
		EmissionScale: 1.2,
	}
}

type surfaceSnapshot struct {
	renderer *components.MeshRenderer
	color    rl.Color
	emission rl.Color
	emissive bool
}

func (m *MaterialEmphasizer) Emphasize(obj *engine.GameObject) func() {
	renderers := engine.GetComponentsInChildren[*components.MeshRenderer](obj, false)
	snaps := make([]surfaceSnapshot, 0, len(renderers))
	for _, r := range renderers {
		snaps = append(snaps, surfaceSnapshot{
			renderer: r,
			color:    r.Color,
			emission: r.Emission,
			emissive: r.Emissive,
		})
		r.Color = lerpColor(r.Color, m.Color, m.Blend)
		r.Emission = scaleColor(m.Color, m.EmissionScale)
		r.Emissive = true
	}
	return func() {
		for _, s := range snaps {
			s.renderer.Color = s.color
			s.renderer.Emission = s.emission
			s.renderer.Emissive = s.emissive
		}
	}
}

func lerpColor(a, b rl.Color, t float32) rl.Color {
	lerp := func(x, y uint8) uint8 {
		v := float32(x) + (float32(y)-float32(x))*t
		return clampByte(v + 0.5)
	}
	return rl.Color{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func scaleColor(c rl.Color, s float32) rl.Color {
	return rl.Color{
		R: clampByte(float32(c.R) * s),
		G: clampByte(float32(c.G) * s),
		B: clampByte(float32(c.B) * s),
		A: c.A,
	}
}

func clampByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
