package world

import (
	"time"

	"edgeofdark/internal/combat"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/logging"
	"edgeofdark/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Epoch is where a world's simulation clock starts.
var Epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// World owns the scene, the physics step and the simulation clock, and is
// what components see as engine.WorldAccess.
type World struct {
	Scene   *engine.Scene
	Physics *physics.PhysicsWorld
	Deps    combat.Deps
	Tuning  combat.Tuning
	Log     zerolog.Logger

	clock   *engine.ManualClock
	doomed  []*engine.GameObject
	started bool
	ticks   uint64
}

// New creates an empty world. deps.Clock is replaced by the world's own
// clock so every component shares simulation time.
func New(deps combat.Deps, tuning combat.Tuning) *World {
	w := &World{
		Scene:   engine.NewScene("Main"),
		Physics: physics.NewPhysicsWorld(),
		Tuning:  tuning,
		Log:     logging.Component(deps.Log, "world"),
		clock:   engine.NewManualClock(Epoch),
	}
	deps.Clock = w.clock
	w.Deps = deps
	w.Physics.Log = logging.Sampled(logging.Component(deps.Log, "physics"), 20, time.Second, 50)
	w.Scene.World = w
	return w
}

func (w *World) Clock() engine.Clock {
	return w.clock
}

// Elapsed is simulation time since the world was created.
func (w *World) Elapsed() time.Duration {
	return w.clock.Now().Sub(Epoch)
}

func (w *World) Ticks() uint64 {
	return w.ticks
}

// Add registers a level object and its descendants with the scene and the
// physics world. Objects added after Start are started immediately.
func (w *World) Add(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
	w.Physics.AddObject(g)
	if w.started {
		startHierarchy(g)
	}
}

// SpawnObject implements engine.WorldAccess.
func (w *World) SpawnObject(g *engine.GameObject) {
	w.Log.Debug().Str("object", g.Name).Msg("spawn")
	w.Add(g)
}

// Destroy removes g at the end of the current tick.
func (w *World) Destroy(g *engine.GameObject) {
	for _, d := range w.doomed {
		if d == g {
			return
		}
	}
	w.doomed = append(w.doomed, g)
}

func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, mask engine.LayerMask, ignore *engine.GameObject) (engine.RaycastResult, bool) {
	return w.Physics.Raycast(origin, direction, maxDistance, mask, ignore)
}

func (w *World) Start() {
	if w.started {
		return
	}
	w.started = true
	w.Scene.Start()
}

// Update advances the clock by deltaTime, then runs components, physics
// and finally pending destroys.
func (w *World) Update(deltaTime float32) {
	if !w.started {
		w.Start()
	}
	w.ticks++
	w.clock.AdvanceSeconds(deltaTime)
	w.Scene.Update(deltaTime)
	w.Physics.Update(deltaTime)
	w.flush()
}

func (w *World) flush() {
	if len(w.doomed) == 0 {
		return
	}
	doomed := w.doomed
	w.doomed = nil
	for _, g := range doomed {
		if g.Parent != nil {
			g.Parent.RemoveChild(g)
		}
		w.Physics.RemoveObject(g)
		w.Scene.RemoveGameObject(g)
		w.Log.Debug().Str("object", g.Name).Msg("destroyed")
	}
}

// Find returns the first object with name, or nil.
func (w *World) Find(name string) *engine.GameObject {
	return w.Scene.FindByName(name)
}

func startHierarchy(g *engine.GameObject) {
	g.Walk(func(obj *engine.GameObject) bool {
		obj.Start()
		return true
	})
}
