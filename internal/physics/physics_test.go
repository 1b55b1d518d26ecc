package physics

import (
	"testing"

	"edgeofdark/internal/components"
	"edgeofdark/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type triggerRecorder struct {
	engine.BaseComponent
	entered []string
	stayed  []string
	exited  []string
}

func (r *triggerRecorder) OnTriggerStay(other *engine.GameObject) {
	r.stayed = append(r.stayed, other.Name)
}

func (r *triggerRecorder) OnTriggerEnter(other *engine.GameObject) {
	r.entered = append(r.entered, other.Name)
}

func (r *triggerRecorder) OnTriggerExit(other *engine.GameObject) {
	r.exited = append(r.exited, other.Name)
}

func newBox(name string, pos, size rl.Vector3) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(size))
	return g
}

func newFloor() *engine.GameObject {
	return newBox("Floor", rl.Vector3{Y: -0.5}, rl.Vector3{X: 20, Y: 1, Z: 20})
}

func TestAABBResolve(t *testing.T) {
	a := NewAABBFromCenter(rl.Vector3{Y: 0.4}, rl.Vector3{X: 1, Y: 1, Z: 1})
	b := NewAABBFromCenter(rl.Vector3{Y: -0.5}, rl.Vector3{X: 10, Y: 1, Z: 10})

	push := a.Resolve(b)
	assert.InDelta(t, 0.1, push.Y, 1e-5)
	assert.Equal(t, float32(0), push.X)

	far := NewAABBFromCenter(rl.Vector3{Y: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	assert.Equal(t, rl.Vector3{}, far.Resolve(b))
	assert.True(t, b.IntersectsSphere(rl.Vector3{Y: 0.2}, 0.25))
	assert.False(t, b.IntersectsSphere(rl.Vector3{Y: 0.3}, 0.25))
}

func TestRaycastNearestSolidHit(t *testing.T) {
	pw := NewPhysicsWorld()
	near := newBox("Near", rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 1, Z: 1})
	far := newBox("Far", rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	pw.AddObject(far)
	pw.AddObject(near)

	hit, ok := pw.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 10, engine.AllLayers, nil)
	require.True(t, ok)
	assert.Equal(t, near, hit.GameObject)
	assert.InDelta(t, 1.5, hit.Distance, 1e-5)
	assert.Equal(t, rl.Vector3{X: -1}, hit.Normal)

	_, ok = pw.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 1, engine.AllLayers, nil)
	assert.False(t, ok, "hit beyond maxDistance must be ignored")
}

func TestRaycastSkipsTriggersInactiveMaskedAndIgnored(t *testing.T) {
	pw := NewPhysicsWorld()
	trigger := engine.NewGameObject("Trigger")
	trigger.Transform.Position = rl.Vector3{X: 1}
	trigger.AddComponent(components.NewBoxTrigger(rl.Vector3{X: 1, Y: 1, Z: 1}))
	hidden := newBox("Hidden", rl.Vector3{X: 2}, rl.Vector3{X: 1, Y: 1, Z: 1})
	hidden.SetActive(false)
	layered := newBox("Layered", rl.Vector3{X: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	layered.Layer = 4
	player := engine.NewGameObject("Player")
	held := newBox("Held", rl.Vector3{X: 4}, rl.Vector3{X: 1, Y: 1, Z: 1})
	player.AddChild(held)
	target := engine.NewGameObject("Ball")
	target.Transform.Position = rl.Vector3{X: 6}
	target.AddComponent(components.NewSphereCollider(0.5))

	for _, g := range []*engine.GameObject{trigger, hidden, layered, player, target} {
		pw.AddObject(g)
	}

	hit, ok := pw.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 10, engine.MaskOf(0), player)
	require.True(t, ok)
	assert.Equal(t, target, hit.GameObject)
	assert.InDelta(t, 5.5, hit.Distance, 1e-4)

	hit, ok = pw.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 10, engine.AllLayers, player)
	require.True(t, ok)
	assert.Equal(t, layered, hit.GameObject)

	_, ok = pw.Raycast(rl.Vector3{}, rl.Vector3{}, 10, engine.AllLayers, nil)
	assert.False(t, ok, "zero direction never hits")
}

func TestFreeBodyFallsAndRestsOnFloor(t *testing.T) {
	pw := NewPhysicsWorld()
	pw.AddObject(newFloor())

	crate := newBox("Crate", rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	rb := components.NewRigidbody()
	crate.AddComponent(rb)
	pw.AddObject(crate)

	for i := 0; i < 240; i++ {
		pw.Update(1.0 / 60)
	}

	assert.InDelta(t, 0.5, crate.Transform.Position.Y, 0.05)
	assert.Less(t, rl.Vector3Length(rb.Velocity), float32(0.5))
}

func TestKinematicAndParentedBodiesAreNotIntegrated(t *testing.T) {
	pw := NewPhysicsWorld()
	held := newBox("Held", rl.Vector3{Y: 3}, rl.Vector3{X: 1, Y: 1, Z: 1})
	held.AddComponent(components.NewKinematicRigidbody())
	hand := engine.NewGameObject("Hand")
	hand.AddComponent(components.NewKinematicRigidbody())
	carried := newBox("Carried", rl.Vector3{Y: 1}, rl.Vector3{X: 1, Y: 1, Z: 1})
	carried.AddComponent(components.NewRigidbody())
	hand.AddChild(carried)
	pw.AddObject(held)
	pw.AddObject(hand)

	for i := 0; i < 10; i++ {
		pw.Update(1.0 / 60)
	}

	assert.Equal(t, float32(3), held.Transform.Position.Y)
	assert.Equal(t, float32(1), carried.Transform.Position.Y)
}

func TestGroupedBodyFallsInWorldSpace(t *testing.T) {
	pw := NewPhysicsWorld()
	pw.AddObject(newFloor())

	group := engine.NewGameObject("Weapons")
	group.Transform.Position = rl.Vector3{X: 5, Y: 1}
	crate := newBox("Crate", rl.Vector3{Y: 2}, rl.Vector3{X: 1, Y: 1, Z: 1})
	crate.AddComponent(components.NewRigidbody())
	group.AddChild(crate)
	pw.AddObject(group)

	for i := 0; i < 240; i++ {
		pw.Update(1.0 / 60)
	}

	assert.Same(t, group, crate.Parent)
	assert.InDelta(t, 0.5, crate.WorldPosition().Y, 0.05)
	assert.InDelta(t, 5, crate.WorldPosition().X, 1e-3)
	assert.InDelta(t, -0.5, crate.Transform.Position.Y, 0.05, "local position follows the parent frame")
}

func TestSphereBodyRestsOnFloor(t *testing.T) {
	pw := NewPhysicsWorld()
	pw.AddObject(newFloor())

	ball := engine.NewGameObject("Ball")
	ball.Transform.Position = rl.Vector3{Y: 2}
	ball.AddComponent(components.NewSphereCollider(0.5))
	ball.AddComponent(components.NewRigidbody())
	pw.AddObject(ball)

	for i := 0; i < 240; i++ {
		pw.Update(1.0 / 60)
	}
	assert.InDelta(t, 0.5, ball.Transform.Position.Y, 0.05)
}

func TestTriggerEnterExit(t *testing.T) {
	pw := NewPhysicsWorld()
	blade := engine.NewGameObject("Blade")
	blade.AddComponent(components.NewBoxTrigger(rl.Vector3{X: 1, Y: 1, Z: 1}))
	bladeRec := &triggerRecorder{}
	blade.AddComponent(bladeRec)

	enemy := newBox("Enemy", rl.Vector3{X: 5}, rl.Vector3{X: 1, Y: 2, Z: 1})
	enemyRec := &triggerRecorder{}
	enemy.AddComponent(enemyRec)

	pw.AddObject(blade)
	pw.AddObject(enemy)

	pw.Update(0.016)
	assert.Empty(t, bladeRec.entered)

	blade.Transform.Position = rl.Vector3{X: 4.6}
	pw.Update(0.016)
	pw.Update(0.016)
	assert.Equal(t, []string{"Enemy"}, bladeRec.entered, "enter fires once per overlap")
	assert.Equal(t, []string{"Blade"}, enemyRec.entered, "both sides are notified")
	assert.Equal(t, []string{"Enemy"}, bladeRec.stayed, "second overlapping step is a stay")
	require.Len(t, pw.ActiveTriggers(), 1)

	blade.Transform.Position = rl.Vector3{}
	pw.Update(0.016)
	assert.Equal(t, []string{"Enemy"}, bladeRec.exited)
	assert.Equal(t, []string{"Blade"}, enemyRec.exited)
	assert.Empty(t, pw.ActiveTriggers())
}

func TestTriggerIgnoresOwnHierarchyAndInactive(t *testing.T) {
	pw := NewPhysicsWorld()
	player := newBox("Player", rl.Vector3{}, rl.Vector3{X: 1, Y: 2, Z: 1})
	blade := engine.NewGameObject("Blade")
	blade.AddComponent(components.NewBoxTrigger(rl.Vector3{X: 1, Y: 1, Z: 1}))
	rec := &triggerRecorder{}
	blade.AddComponent(rec)
	player.AddChild(blade)

	dead := newBox("Dead", rl.Vector3{X: 0.5}, rl.Vector3{X: 1, Y: 1, Z: 1})
	dead.SetActive(false)

	pw.AddObject(player)
	pw.AddObject(dead)
	pw.Update(0.016)

	assert.Empty(t, rec.entered)
}

func TestSphereTriggerAgainstBox(t *testing.T) {
	pw := NewPhysicsWorld()
	bolt := engine.NewGameObject("Bolt")
	bolt.Transform.Position = rl.Vector3{X: 0.7}
	bolt.AddComponent(components.NewSphereTrigger(0.25))
	rec := &triggerRecorder{}
	bolt.AddComponent(rec)
	target := newBox("Target", rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	pw.AddObject(bolt)
	pw.AddObject(target)

	pw.Update(0.016)
	assert.Equal(t, []string{"Target"}, rec.entered)
}

func TestRemoveObjectEndsPairsSilently(t *testing.T) {
	pw := NewPhysicsWorld()
	bolt := engine.NewGameObject("Bolt")
	bolt.AddComponent(components.NewSphereTrigger(0.25))
	rec := &triggerRecorder{}
	bolt.AddComponent(rec)
	target := newBox("Target", rl.Vector3{}, rl.Vector3{X: 1, Y: 1, Z: 1})
	pw.AddObject(bolt)
	pw.AddObject(target)
	pw.Update(0.016)
	require.Len(t, pw.ActiveTriggers(), 1)

	pw.RemoveObject(bolt)
	pw.Update(0.016)

	assert.Empty(t, rec.exited)
	assert.Equal(t, 1, pw.ObjectCount())
}

func TestPushOutSkipsSelfAndBodies(t *testing.T) {
	pw := NewPhysicsWorld()
	wall := newBox("Wall", rl.Vector3{X: 1}, rl.Vector3{X: 1, Y: 2, Z: 2})
	crate := newBox("Crate", rl.Vector3{X: -1}, rl.Vector3{X: 1, Y: 1, Z: 1})
	crate.AddComponent(components.NewRigidbody())
	player := newBox("Player", rl.Vector3{X: 0.4}, rl.Vector3{X: 0.6, Y: 1, Z: 0.6})
	pw.AddObject(wall)
	pw.AddObject(crate)
	pw.AddObject(player)

	box := NewAABBFromCenter(rl.Vector3{X: 0.4}, rl.Vector3{X: 0.6, Y: 1, Z: 0.6})
	push := pw.PushOut(box, player)
	assert.InDelta(t, -0.2, push.X, 1e-5)
	assert.Equal(t, float32(0), push.Y)

	wall.SetActive(false)
	assert.Equal(t, rl.Vector3{}, pw.PushOut(box, player))
}
