package physics

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// PushOut returns the translation that moves box out of every active static
// solid box. Objects in self's hierarchy are skipped.
func (p *PhysicsWorld) PushOut(box AABB, self *engine.GameObject) rl.Vector3 {
	var total rl.Vector3
	for _, obj := range p.objects {
		if !obj.ActiveInHierarchy() || !isStatic(obj) {
			continue
		}
		if self != nil && obj.IsDescendantOf(self) {
			continue
		}
		col := engine.GetComponent[*components.BoxCollider](obj)
		if col == nil || col.IsTrigger {
			continue
		}
		push := box.Resolve(NewAABBFromCenter(col.GetCenter(), col.GetWorldSize()))
		box.Min = rl.Vector3Add(box.Min, push)
		box.Max = rl.Vector3Add(box.Max, push)
		total = rl.Vector3Add(total, push)
	}
	return total
}
