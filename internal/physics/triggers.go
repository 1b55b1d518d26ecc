package physics

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// TriggerPair is a trigger collider's object overlapping another object's
// solid collider.
type TriggerPair struct {
	Trigger *engine.GameObject
	Other   *engine.GameObject
}

type pairKey [2]uint64

func (t TriggerPair) key() pairKey {
	return pairKey{t.Trigger.UID, t.Other.UID}
}

// shape is a world-space collider volume.
type shape struct {
	trigger bool
	sphere  bool
	box     AABB
	center  rl.Vector3
	radius  float32
}

func shapesOf(g *engine.GameObject) []shape {
	var out []shape
	for _, c := range g.Components() {
		switch col := c.(type) {
		case *components.BoxCollider:
			out = append(out, shape{
				trigger: col.IsTrigger,
				box:     NewAABBFromCenter(col.GetCenter(), col.GetWorldSize()),
			})
		case *components.SphereCollider:
			out = append(out, shape{
				trigger: col.IsTrigger,
				sphere:  true,
				center:  col.GetCenter(),
				radius:  col.GetWorldRadius(),
			})
		}
	}
	return out
}

func (a shape) overlaps(b shape) bool {
	switch {
	case a.sphere && b.sphere:
		d := rl.Vector3Subtract(a.center, b.center)
		r := a.radius + b.radius
		return rl.Vector3DotProduct(d, d) <= r*r
	case a.sphere:
		return b.box.IntersectsSphere(a.center, a.radius)
	case b.sphere:
		return a.box.IntersectsSphere(b.center, b.radius)
	default:
		return a.box.Intersects(b.box)
	}
}

// ActiveTriggers returns the pairs overlapping after the last step.
func (p *PhysicsWorld) ActiveTriggers() []TriggerPair {
	return append([]TriggerPair(nil), p.activeTriggers...)
}

func (p *PhysicsWorld) updateTriggers() {
	type entry struct {
		obj    *engine.GameObject
		shapes []shape
	}
	live := make([]entry, 0, len(p.objects))
	for _, obj := range p.objects {
		if !obj.ActiveInHierarchy() {
			continue
		}
		if s := shapesOf(obj); len(s) > 0 {
			live = append(live, entry{obj: obj, shapes: s})
		}
	}

	var current []TriggerPair
	currentSet := make(map[pairKey]bool)
	for _, t := range live {
		for _, ts := range t.shapes {
			if !ts.trigger {
				continue
			}
			for _, o := range live {
				if o.obj == t.obj || o.obj.Root() == t.obj.Root() {
					continue
				}
				pair := TriggerPair{Trigger: t.obj, Other: o.obj}
				if currentSet[pair.key()] {
					continue
				}
				for _, os := range o.shapes {
					if !os.trigger && ts.overlaps(os) {
						currentSet[pair.key()] = true
						current = append(current, pair)
						break
					}
				}
			}
		}
	}

	previous := p.activeTriggers
	p.activeTriggers = current
	prevSet := p.activeSet
	p.activeSet = currentSet

	for _, pair := range current {
		if prevSet[pair.key()] {
			notifyStay(pair.Trigger, pair.Other)
			notifyStay(pair.Other, pair.Trigger)
			continue
		}
		p.Log.Debug().Str("trigger", pair.Trigger.Name).Str("other", pair.Other.Name).Msg("trigger enter")
		notifyTrigger(pair.Trigger, pair.Other, true)
		notifyTrigger(pair.Other, pair.Trigger, true)
	}
	for _, pair := range previous {
		if currentSet[pair.key()] {
			continue
		}
		p.Log.Debug().Str("trigger", pair.Trigger.Name).Str("other", pair.Other.Name).Msg("trigger exit")
		notifyTrigger(pair.Trigger, pair.Other, false)
		notifyTrigger(pair.Other, pair.Trigger, false)
	}
}

// notifyTrigger calls the handlers on obj while it is still active. Handlers
// may deactivate obj mid-dispatch, so the check is per component.
func notifyTrigger(obj, other *engine.GameObject, enter bool) {
	for _, comp := range obj.Components() {
		if !obj.ActiveInHierarchy() {
			return
		}
		handler, ok := comp.(engine.TriggerHandler)
		if !ok {
			continue
		}
		if enter {
			handler.OnTriggerEnter(other)
		} else {
			handler.OnTriggerExit(other)
		}
	}
}

func notifyStay(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if !obj.ActiveInHierarchy() {
			return
		}
		if handler, ok := comp.(engine.TriggerStayHandler); ok {
			handler.OnTriggerStay(other)
		}
	}
}
