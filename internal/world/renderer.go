package world

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws a world's primitives with frustum culling. Call Draw
// between rl.BeginMode3D and rl.EndMode3D.
type Renderer struct {
	ShowColliders bool
	ShowGrid      bool

	frustum Frustum
	drawn   int
}

func NewRenderer() *Renderer {
	return &Renderer{ShowGrid: true}
}

// Drawn reports how many meshes survived culling in the last Draw.
func (r *Renderer) Drawn() int {
	return r.drawn
}

func (r *Renderer) Draw(w *World, camera rl.Camera3D, aspect float32) {
	r.frustum = ExtractFrustum(camera, aspect)
	if r.ShowGrid {
		rl.DrawGrid(40, 1)
	}
	meshes := VisibleMeshes(w.Scene.GameObjects, &r.frustum)
	r.drawn = len(meshes)
	for _, m := range meshes {
		m.Draw()
	}
	for _, g := range w.Scene.GameObjects {
		if !g.ActiveInHierarchy() {
			continue
		}
		if bar := engine.GetComponent[*components.HealthBar](g); bar != nil {
			bar.Draw()
		}
		if r.ShowColliders {
			drawColliders(g)
		}
	}
}

// VisibleMeshes returns the active mesh renderers whose bounding sphere
// touches the frustum.
func VisibleMeshes(objects []*engine.GameObject, f *Frustum) []*components.MeshRenderer {
	var out []*components.MeshRenderer
	for _, g := range objects {
		if !g.ActiveInHierarchy() {
			continue
		}
		m := engine.GetComponent[*components.MeshRenderer](g)
		if m == nil {
			continue
		}
		s := g.WorldScale()
		extent := rl.Vector3{X: m.Size.X * s.X, Y: m.Size.Y * s.Y, Z: m.Size.Z * s.Z}
		if f.ContainsSphere(g.WorldPosition(), rl.Vector3Length(extent)/2) {
			out = append(out, m)
		}
	}
	return out
}

func drawColliders(g *engine.GameObject) {
	for _, c := range g.Components() {
		switch col := c.(type) {
		case *components.BoxCollider:
			color := rl.Green
			if col.IsTrigger {
				color = rl.Yellow
			}
			rl.DrawCubeWiresV(col.GetCenter(), col.GetWorldSize(), color)
		case *components.SphereCollider:
			color := rl.Green
			if col.IsTrigger {
				color = rl.Yellow
			}
			rl.DrawSphereWires(col.GetCenter(), col.GetWorldRadius(), 8, 8, color)
		}
	}
}
