package engine

import rl "github.com/gen2brain/raylib-go/raylib"

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// LookProvider is implemented by components that own the viewer's aim pose.
// Used by ray casts and projectile launches that need an origin and direction.
type LookProvider interface {
	GetLookDirection() rl.Vector3
	GetEyePosition() rl.Vector3
}

// TriggerHandler is implemented by components that want trigger overlap callbacks.
// The physics world calls these on both sides of a trigger/collider pair.
type TriggerHandler interface {
	OnTriggerEnter(other *GameObject)
	OnTriggerExit(other *GameObject)
}

// TriggerStayHandler additionally hears about overlaps that persist across steps.
type TriggerStayHandler interface {
	OnTriggerStay(other *GameObject)
}

// Disabler is implemented by components that must tear down state when their
// GameObject stops being active in the hierarchy.
type Disabler interface {
	OnDisable()
}

// Enabler is the counterpart of Disabler.
type Enabler interface {
	OnEnable()
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
