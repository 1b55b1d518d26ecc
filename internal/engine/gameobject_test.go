package engine

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func approxVec(a, b rl.Vector3) bool {
	const eps = 1e-4
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps
}

type lifecycleRecorder struct {
	BaseComponent
	started  int
	updates  int
	enabled  int
	disabled int
}

func (p *lifecycleRecorder) Start()                   { p.started++ }
func (p *lifecycleRecorder) Update(deltaTime float32) { p.updates++ }
func (p *lifecycleRecorder) OnEnable()                { p.enabled++ }
func (p *lifecycleRecorder) OnDisable()               { p.disabled++ }

func TestNewGameObject(t *testing.T) {
	obj := NewGameObject("TestObject")

	if obj.Name != "TestObject" {
		t.Errorf("Expected name 'TestObject', got '%s'", obj.Name)
	}
	if obj.UID == 0 {
		t.Error("UID should not be 0")
	}
	if !obj.Active {
		t.Error("new objects should start active")
	}
	if obj.Transform.Scale != (rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("Expected unit scale, got %v", obj.Transform.Scale)
	}
}

func TestGameObjectUniqueUIDs(t *testing.T) {
	seen := map[uint64]bool{}
	for i := 0; i < 50; i++ {
		obj := NewGameObject("Obj")
		if seen[obj.UID] {
			t.Fatalf("duplicate UID %d", obj.UID)
		}
		seen[obj.UID] = true
	}
}

func TestGameObjectHasTag(t *testing.T) {
	obj := NewGameObject("Test")
	obj.Tags = []string{"Enemy", "Weapons"}

	if !obj.HasTag("Enemy") {
		t.Error("HasTag should return true for existing tag")
	}
	if obj.HasTag("Player") {
		t.Error("HasTag should return false for non-existent tag")
	}
	if NewGameObject("Bare").HasTag("anything") {
		t.Error("HasTag should return false when Tags is empty")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewGameObject("A")
	b := NewGameObject("B")
	child := NewGameObject("Child")

	a.AddChild(child)
	b.AddChild(child)

	if child.Parent != b {
		t.Error("child should belong to its latest parent")
	}
	if len(a.Children) != 0 {
		t.Errorf("old parent should lose the child, has %d children", len(a.Children))
	}
	if len(b.Children) != 1 {
		t.Errorf("Expected 1 child, got %d", len(b.Children))
	}
}

func TestGameObjectRemoveChild(t *testing.T) {
	parent := NewGameObject("Parent")
	child1 := NewGameObject("Child1")
	child2 := NewGameObject("Child2")
	parent.AddChild(child1)
	parent.AddChild(child2)

	parent.RemoveChild(child1)

	if len(parent.Children) != 1 || parent.Children[0] != child2 {
		t.Error("Wrong child removed")
	}
	if child1.Parent != nil {
		t.Error("Removed child should have nil parent")
	}
}

func TestAddComponentAfterStartRunsStart(t *testing.T) {
	obj := NewGameObject("Test")
	early := &lifecycleRecorder{}
	obj.AddComponent(early)
	obj.Start()
	obj.Start()

	late := &lifecycleRecorder{}
	obj.AddComponent(late)

	if early.started != 1 {
		t.Errorf("Start should run once, ran %d times", early.started)
	}
	if late.started != 1 {
		t.Error("component added after Start should be started immediately")
	}
	if late.GetGameObject() != obj {
		t.Error("component should be bound to its GameObject")
	}
}

func TestComponentLookups(t *testing.T) {
	root := NewGameObject("Root")
	mid := NewGameObject("Mid")
	leaf := NewGameObject("Leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	rec := &lifecycleRecorder{}
	root.AddComponent(rec)

	if GetComponent[*lifecycleRecorder](leaf) != nil {
		t.Error("GetComponent should only look at the object itself")
	}
	found, owner := GetComponentInParent[*lifecycleRecorder](leaf)
	if found != rec || owner != root {
		t.Error("GetComponentInParent should find the ancestor's component")
	}

	deep := &lifecycleRecorder{}
	leaf.AddComponent(deep)
	if GetComponentInChildren[*lifecycleRecorder](mid, false) != deep {
		t.Error("GetComponentInChildren should find a descendant's component")
	}

	leaf.Active = false
	if GetComponentInChildren[*lifecycleRecorder](mid, false) != nil {
		t.Error("inactive descendants should be skipped by default")
	}
	if GetComponentInChildren[*lifecycleRecorder](mid, true) != deep {
		t.Error("includeInactive should search inactive descendants")
	}
	if n := len(GetComponentsInChildren[*lifecycleRecorder](root, true)); n != 2 {
		t.Errorf("Expected 2 components in hierarchy, got %d", n)
	}
	if GetComponent[*lifecycleRecorder](nil) != nil {
		t.Error("GetComponent on nil object should return zero value")
	}
}

func TestHierarchyQueries(t *testing.T) {
	root := NewGameObject("Root")
	child := NewGameObject("Child")
	other := NewGameObject("Other")
	root.AddChild(child)

	if child.Root() != root || root.Root() != root {
		t.Error("Root should return the topmost ancestor")
	}
	if !child.IsDescendantOf(root) || !child.IsDescendantOf(child) {
		t.Error("IsDescendantOf should include ancestors and self")
	}
	if child.IsDescendantOf(other) || child.IsDescendantOf(nil) {
		t.Error("IsDescendantOf should reject unrelated objects")
	}
}

func TestSetActiveNotifiesHierarchy(t *testing.T) {
	root := NewGameObject("Root")
	child := NewGameObject("Child")
	root.AddChild(child)
	rootRec := &lifecycleRecorder{}
	childRec := &lifecycleRecorder{}
	root.AddComponent(rootRec)
	child.AddComponent(childRec)

	root.SetActive(false)
	root.SetActive(false)

	if rootRec.disabled != 1 || childRec.disabled != 1 {
		t.Errorf("Expected one OnDisable each, got root=%d child=%d", rootRec.disabled, childRec.disabled)
	}
	if child.ActiveInHierarchy() {
		t.Error("child of inactive parent should not be active in hierarchy")
	}

	// Toggling a child under an inactive parent changes nothing effective.
	child.SetActive(false)
	child.SetActive(true)
	if childRec.disabled != 1 || childRec.enabled != 0 {
		t.Error("child under inactive parent should not be notified")
	}

	root.SetActive(true)
	if rootRec.enabled != 1 || childRec.enabled != 1 {
		t.Error("reactivating root should enable the subtree")
	}
}

func TestUpdateSkipsInactive(t *testing.T) {
	root := NewGameObject("Root")
	child := NewGameObject("Child")
	root.AddChild(child)
	rec := &lifecycleRecorder{}
	child.AddComponent(rec)

	child.Update(0.016)
	root.Active = false
	child.Update(0.016)

	if rec.updates != 1 {
		t.Errorf("Expected 1 update, got %d", rec.updates)
	}
}

func TestWorldPositionRotatedParent(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 10}
	parent.Transform.Rotation = rl.Vector3{Y: 90}
	child := NewGameObject("Child")
	child.Transform.Position = rl.Vector3{X: 1}
	parent.AddChild(child)

	got := child.WorldPosition()
	if !approxVec(got, rl.Vector3{X: 10, Z: -1}) {
		t.Errorf("Expected (10,0,-1), got %v", got)
	}
	if child.WorldRotation() != (rl.Vector3{Y: 90}) {
		t.Errorf("Expected inherited rotation, got %v", child.WorldRotation())
	}
}

func TestSetParentKeepWorld(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{X: 2, Y: 1}
	parent.Transform.Rotation = rl.Vector3{Y: 90}
	parent.Transform.Scale = rl.Vector3{X: 2, Y: 2, Z: 2}

	obj := NewGameObject("Obj")
	obj.Transform.Position = rl.Vector3{X: 5, Y: 1, Z: 3}

	obj.SetParent(parent, true)
	if !approxVec(obj.WorldPosition(), rl.Vector3{X: 5, Y: 1, Z: 3}) {
		t.Errorf("world position should survive re-parenting, got %v", obj.WorldPosition())
	}
	if !approxVec(obj.WorldScale(), rl.Vector3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("world scale should survive re-parenting, got %v", obj.WorldScale())
	}

	obj.SetParent(nil, true)
	if obj.Parent != nil {
		t.Error("SetParent(nil) should detach")
	}
	if !approxVec(obj.Transform.Position, rl.Vector3{X: 5, Y: 1, Z: 3}) {
		t.Errorf("detached local position should equal old world position, got %v", obj.Transform.Position)
	}
}

func TestSetParentLocal(t *testing.T) {
	parent := NewGameObject("Parent")
	parent.Transform.Position = rl.Vector3{Y: 3}
	obj := NewGameObject("Obj")
	obj.Transform.Position = rl.Vector3{X: 1}

	obj.SetParent(parent, false)

	if obj.Transform.Position != (rl.Vector3{X: 1}) {
		t.Error("local transform should be untouched without keepWorld")
	}
	if !approxVec(obj.WorldPosition(), rl.Vector3{X: 1, Y: 3}) {
		t.Errorf("Expected (1,3,0), got %v", obj.WorldPosition())
	}
}
