package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Layer      int
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.started {
		c.Start()
	}
}

// GetComponent returns the first component on g assignable to T.
func GetComponent[T any](g *GameObject) T {
	var zero T
	if g == nil {
		return zero
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponentInParent searches g and then its ancestors, returning the
// component and the object that owns it.
func GetComponentInParent[T any](g *GameObject) (T, *GameObject) {
	for cur := g; cur != nil; cur = cur.Parent {
		for _, c := range cur.components {
			if typed, ok := c.(T); ok {
				return typed, cur
			}
		}
	}
	var zero T
	return zero, nil
}

// GetComponentInChildren searches g and its descendants depth-first.
// Inactive descendants are included only when includeInactive is set.
func GetComponentInChildren[T any](g *GameObject, includeInactive bool) T {
	found, _ := findInChildren[T](g, includeInactive)
	return found
}

func findInChildren[T any](g *GameObject, includeInactive bool) (T, bool) {
	var zero T
	if g == nil || (!includeInactive && !g.Active) {
		return zero, false
	}
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	for _, child := range g.Children {
		if found, ok := findInChildren[T](child, includeInactive); ok {
			return found, true
		}
	}
	return zero, false
}

// GetComponentsInChildren collects every component assignable to T in g's hierarchy.
func GetComponentsInChildren[T any](g *GameObject, includeInactive bool) []T {
	var out []T
	g.Walk(func(obj *GameObject) bool {
		if !includeInactive && !obj.Active {
			return false
		}
		for _, c := range obj.components {
			if typed, ok := c.(T); ok {
				out = append(out, typed)
			}
		}
		return true
	})
	return out
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	g.started = true
	for _, c := range g.components {
		c.Start()
	}
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.ActiveInHierarchy() {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Walk visits g and its descendants depth-first. Returning false from visit
// skips that object's children.
func (g *GameObject) Walk(visit func(*GameObject) bool) {
	if g == nil || !visit(g) {
		return
	}
	for _, child := range g.Children {
		child.Walk(visit)
	}
}

// Root returns the topmost ancestor (g itself when unparented).
func (g *GameObject) Root() *GameObject {
	cur := g
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// IsDescendantOf reports whether g is other or sits anywhere below it.
func (g *GameObject) IsDescendantOf(other *GameObject) bool {
	if other == nil {
		return false
	}
	for cur := g; cur != nil; cur = cur.Parent {
		if cur == other {
			return true
		}
	}
	return false
}

// ActiveInHierarchy is true when g and every ancestor are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if !cur.Active {
			return false
		}
	}
	return true
}

// SetActive toggles the object's own active flag. Components in the affected
// hierarchy receive OnDisable/OnEnable when the effective state changes.
func (g *GameObject) SetActive(active bool) {
	if g.Active == active {
		return
	}
	before := g.ActiveInHierarchy()
	g.Active = active
	after := g.ActiveInHierarchy()
	if before == after {
		return
	}
	g.notifyActivation(after)
}

func (g *GameObject) notifyActivation(active bool) {
	for _, c := range g.components {
		if active {
			if e, ok := c.(Enabler); ok {
				e.OnEnable()
			}
		} else if d, ok := c.(Disabler); ok {
			d.OnDisable()
		}
	}
	for _, child := range g.Children {
		if child.Active {
			child.notifyActivation(active)
		}
	}
}

func (g *GameObject) AddChild(child *GameObject) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// SetParent re-parents g. With keepWorld the world pose is preserved;
// otherwise the local transform is kept as-is relative to the new parent.
func (g *GameObject) SetParent(parent *GameObject, keepWorld bool) {
	worldPos := g.WorldPosition()
	worldRot := g.WorldRotation()
	worldScale := g.WorldScale()

	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if parent != nil {
		parent.AddChild(g)
	}
	if !keepWorld {
		return
	}

	if parent == nil {
		g.Transform.Position = worldPos
		g.Transform.Rotation = worldRot
		g.Transform.Scale = worldScale
		return
	}

	parentRot := parent.WorldRotation()
	parentScale := parent.WorldScale()

	g.Transform.Position = parent.localPoint(worldPos)
	g.Transform.Rotation = rl.Vector3Subtract(worldRot, parentRot)
	g.Transform.Scale = rl.Vector3{
		X: safeDiv(worldScale.X, parentScale.X),
		Y: safeDiv(worldScale.Y, parentScale.Y),
		Z: safeDiv(worldScale.Z, parentScale.Z),
	}
}

// SetWorldPosition moves g so that WorldPosition returns p.
func (g *GameObject) SetWorldPosition(p rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = p
		return
	}
	g.Transform.Position = g.Parent.localPoint(p)
}

// localPoint maps a world point into g's local space.
func (g *GameObject) localPoint(world rl.Vector3) rl.Vector3 {
	scale := g.WorldScale()
	inv := rl.MatrixInvert(rotationMatrix(g.WorldRotation()))
	local := rl.Vector3Transform(rl.Vector3Subtract(world, g.WorldPosition()), inv)
	return rl.Vector3{
		X: safeDiv(local.X, scale.X),
		Y: safeDiv(local.Y, scale.Y),
		Z: safeDiv(local.Z, scale.Z),
	}
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return a
	}
	return a / b
}

// rotationMatrix builds the X then Y then Z Euler rotation used by WorldPosition.
func rotationMatrix(rot rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	parentPos := g.Parent.WorldPosition()
	parentRot := g.Parent.WorldRotation()
	parentScale := g.Parent.WorldScale()

	// Scale local position by parent's world scale
	scaled := rl.Vector3{
		X: g.Transform.Position.X * parentScale.X,
		Y: g.Transform.Position.Y * parentScale.Y,
		Z: g.Transform.Position.Z * parentScale.Z,
	}

	rotated := rl.Vector3Transform(scaled, rotationMatrix(parentRot))
	return rl.Vector3Add(parentPos, rotated)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}
