package physics

import (
	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// PhysicsWorld simulates free rigidbodies against static geometry and reports
// trigger overlaps. Bodies are classified every step rather than on insert,
// since picking up and dropping flips a body between kinematic and dynamic.
type PhysicsWorld struct {
	Gravity rl.Vector3
	Log     zerolog.Logger
	objects []*engine.GameObject

	// Trigger pairs overlapping after the last step, in discovery order.
	activeTriggers []TriggerPair
	activeSet      map[pairKey]bool
}

func NewPhysicsWorld() *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:   rl.Vector3{Y: -9.81},
		Log:       zerolog.Nop(),
		activeSet: make(map[pairKey]bool),
	}
}

// AddObject registers g and any descendants that carry a collider or body.
func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	g.Walk(func(obj *engine.GameObject) bool {
		if !hasPhysics(obj) || p.contains(obj) {
			return true
		}
		p.objects = append(p.objects, obj)
		return true
	})
}

// RemoveObject unregisters g and its descendants. Trigger pairs that involve
// them end silently.
func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	g.Walk(func(obj *engine.GameObject) bool {
		for i, o := range p.objects {
			if o == obj {
				p.objects = append(p.objects[:i], p.objects[i+1:]...)
				break
			}
		}
		return true
	})
	kept := p.activeTriggers[:0]
	for _, pair := range p.activeTriggers {
		if pair.Trigger.IsDescendantOf(g) || pair.Other.IsDescendantOf(g) {
			delete(p.activeSet, pair.key())
			continue
		}
		kept = append(kept, pair)
	}
	p.activeTriggers = kept
}

func (p *PhysicsWorld) contains(g *engine.GameObject) bool {
	for _, o := range p.objects {
		if o == g {
			return true
		}
	}
	return false
}

func (p *PhysicsWorld) ObjectCount() int {
	return len(p.objects)
}

func hasPhysics(g *engine.GameObject) bool {
	for _, c := range g.Components() {
		switch c.(type) {
		case *components.Rigidbody, *components.BoxCollider, *components.SphereCollider:
			return true
		}
	}
	return false
}

// Update runs one step: integrate free bodies, push them out of static
// geometry, then dispatch trigger enter/exit.
func (p *PhysicsWorld) Update(deltaTime float32) {
	for _, obj := range p.objects {
		if !obj.ActiveInHierarchy() {
			continue
		}
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || !rb.IsFree() {
			continue
		}
		p.integrate(obj, rb, deltaTime)
		for _, static := range p.objects {
			if static == obj || !static.ActiveInHierarchy() || !isStatic(static) {
				continue
			}
			p.resolveStaticCollision(obj, static, rb)
		}
		rb.TrySleep(deltaTime)
	}

	p.updateTriggers()
}

func (p *PhysicsWorld) integrate(obj *engine.GameObject, rb *components.Rigidbody, deltaTime float32) {
	if rb.UseGravity {
		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
	}
	// Velocity is world space; grouped bodies still move in their parent's frame.
	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), rl.Vector3Scale(rb.Velocity, deltaTime)))
	obj.Transform.Rotation = rl.Vector3Add(obj.Transform.Rotation, rl.Vector3Scale(rb.AngularVelocity, deltaTime))

	// Time-based so damping is framerate independent
	damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
	if damping < 0 {
		damping = 0
	}
	rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)
}

// isStatic: solid collider and no rigidbody.
func isStatic(g *engine.GameObject) bool {
	if engine.GetComponent[*components.Rigidbody](g) != nil {
		return false
	}
	for _, c := range g.Components() {
		if t, ok := c.(interface{ Trigger() bool }); ok && !t.Trigger() {
			return true
		}
	}
	return false
}

func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject, rb *components.Rigidbody) {
	staticBox := engine.GetComponent[*components.BoxCollider](static)
	if staticBox == nil || staticBox.IsTrigger {
		return
	}
	bounds := NewAABBFromCenter(staticBox.GetCenter(), staticBox.GetWorldSize())

	var pushOut rl.Vector3
	if box := engine.GetComponent[*components.BoxCollider](obj); box != nil && !box.IsTrigger {
		pushOut = NewAABBFromCenter(box.GetCenter(), box.GetWorldSize()).Resolve(bounds)
	} else if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil && !sphere.IsTrigger {
		pushOut = resolveSphereVsBox(sphere.GetCenter(), sphere.GetWorldRadius(), bounds)
	}

	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 0.0001 {
		return
	}
	obj.SetWorldPosition(rl.Vector3Add(obj.WorldPosition(), pushOut))
	normal := rl.Vector3Scale(pushOut, 1/pushLen)

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, normal)
	if velAlongNormal < 0 {
		// Remove the inbound component, keep a bounce fraction of it.
		rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(normal, -(1+rb.Bounciness)*velAlongNormal))
		rb.Velocity.X *= 1 - rb.Friction
		rb.Velocity.Z *= 1 - rb.Friction
		if normal.Y > 0.5 {
			rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, 1-rb.Friction*0.5)
		}
	}
}

func resolveSphereVsBox(center rl.Vector3, radius float32, box AABB) rl.Vector3 {
	closest := box.ClosestPoint(center)
	d := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(d)
	if dist >= radius {
		return rl.Vector3{}
	}
	if dist < 0.0001 {
		// Center is inside the box; lift it out the top.
		return rl.Vector3{Y: box.Max.Y - center.Y + radius}
	}
	return rl.Vector3Scale(d, (radius-dist)/dist)
}
