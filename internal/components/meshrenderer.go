package components

import (
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MeshType int

const (
	MeshCube MeshType = iota
	MeshSphere
	MeshPlane
)

// MeshRenderer draws a primitive. Color is the base tint; Emission is added
// on top while Emissive is set.
type MeshRenderer struct {
	engine.BaseComponent
	MeshType MeshType
	Color    rl.Color
	Size     rl.Vector3
	Emission rl.Color
	Emissive bool
}

func NewMeshRenderer(meshType MeshType, color rl.Color, size rl.Vector3) *MeshRenderer {
	return &MeshRenderer{
		MeshType: meshType,
		Color:    color,
		Size:     size,
		Emission: rl.Black,
	}
}

// DrawColor is the tint actually used for drawing.
func (m *MeshRenderer) DrawColor() rl.Color {
	if !m.Emissive {
		return m.Color
	}
	return rl.Color{
		R: addSat(m.Color.R, m.Emission.R),
		G: addSat(m.Color.G, m.Emission.G),
		B: addSat(m.Color.B, m.Emission.B),
		A: m.Color.A,
	}
}

func addSat(a, b uint8) uint8 {
	s := int(a) + int(b)
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.ActiveInHierarchy() {
		return
	}

	pos := g.WorldPosition()
	scale := g.WorldScale()
	size := rl.Vector3{X: m.Size.X * scale.X, Y: m.Size.Y * scale.Y, Z: m.Size.Z * scale.Z}
	color := m.DrawColor()

	switch m.MeshType {
	case MeshCube:
		rl.DrawCubeV(pos, size, color)
		rl.DrawCubeWiresV(pos, size, rl.Fade(rl.Black, 0.3))
	case MeshSphere:
		rl.DrawSphere(pos, size.X/2, color)
	case MeshPlane:
		rl.DrawPlane(pos, rl.Vector2{X: size.X, Y: size.Z}, color)
	}
}
