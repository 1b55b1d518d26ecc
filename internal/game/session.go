package game

import (
	"fmt"
	"math"
	"time"

	"edgeofdark/internal/combat"
	"edgeofdark/internal/components"
	"edgeofdark/internal/config"
	"edgeofdark/internal/engine"
	"edgeofdark/internal/interact"
	"edgeofdark/internal/logging"
	"edgeofdark/internal/telemetry"
	"edgeofdark/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// Hold anchors sit in view space: right of and below the eye, slightly
// forward for weapons.
var (
	weaponAnchorOffset  = rl.Vector3{X: 0.6, Y: -0.25, Z: 0.3}
	defaultAnchorOffset = rl.Vector3{X: 0.6, Y: -0.25}
)

type Options struct {
	Config config.Config
	Log    zerolog.Logger
	// Metrics may be nil.
	Metrics *telemetry.Metrics
	// Reactions are told about hits and deaths in addition to the
	// animation log.
	Reactions combat.Reactions
	// Level overrides Config.Level with raw level JSON.
	Level []byte
	Spawn rl.Vector3
}

// Session is one running arena with a player rig. It owns no window, so the
// same wiring drives the windowed game and the headless runner.
type Session struct {
	Config  config.Config
	World   *world.World
	Metrics *telemetry.Metrics
	Log     zerolog.Logger
	Paused  bool

	Player     *engine.GameObject
	View       *engine.GameObject
	FPS        *components.FPSController
	Camera     *components.Camera
	Interactor *interact.Interactor
	Combatant  *combat.Combatant
}

func NewSession(opts Options) (*Session, error) {
	log := opts.Log
	reactions := combat.ReactionSet{NewAnimationLog(log)}
	if opts.Reactions != nil {
		reactions = append(reactions, opts.Reactions)
	}
	deps := combat.Deps{Reactions: reactions, Metrics: opts.Metrics, Log: log}

	w := world.New(deps, opts.Config.Tuning())
	var err error
	switch {
	case opts.Level != nil:
		err = w.LoadLevel(opts.Level)
	case opts.Config.Level != "":
		err = w.LoadLevelFile(opts.Config.Level)
	default:
		err = w.LoadArena()
	}
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	s := &Session{
		Config:  opts.Config,
		World:   w,
		Metrics: opts.Metrics,
		Log:     logging.Component(log, "session"),
	}
	s.buildPlayer(opts.Spawn)
	w.Add(s.Player)
	w.Start()
	s.Log.Info().Int("objects", len(w.Scene.GameObjects)).Msg("session ready")
	return s, nil
}

func (s *Session) buildPlayer(spawn rl.Vector3) {
	cfg := s.Config
	log := s.World.Deps.Log

	s.Player = engine.NewGameObject("Player")
	s.Player.Tags = []string{"Player"}
	s.Player.Transform.Position = spawn

	body := components.NewBoxCollider(rl.Vector3{X: 0.6, Y: 1.8, Z: 0.6})
	body.Offset = rl.Vector3{Y: 0.9}
	s.Player.AddComponent(body)
	// Kinematic so the physics step treats the player as neither free nor
	// static geometry.
	s.Player.AddComponent(components.NewKinematicRigidbody())

	s.View = engine.NewGameObject("View")
	s.Player.AddChild(s.View)

	s.FPS = components.NewFPSController()
	s.FPS.Rig = s.View
	s.Player.AddComponent(s.FPS)
	s.Camera = components.NewCamera()
	s.Player.AddComponent(s.Camera)
	s.Player.AddComponent(world.NewPlayerCollision(s.World.Physics))

	anchors := make(map[interact.Kind]*engine.GameObject)
	for _, k := range []interact.Kind{interact.KindSword, interact.KindShield, interact.KindStaff} {
		a := engine.NewGameObject(k.String() + "Anchor")
		a.Transform.Position = weaponAnchorOffset
		s.View.AddChild(a)
		anchors[k] = a
	}
	hold := engine.NewGameObject("HoldPoint")
	hold.Transform.Position = defaultAnchorOffset
	s.View.AddChild(hold)

	scanner := interact.NewTargetScanner(s.World, s.FPS, s.Player, cfg.Interact.MaxDistance)
	scanner.Log = logging.Component(log, "scanner")
	highlight := interact.NewHighlightController(cfg.Emphasizer())
	highlight.Log = logging.Component(log, "highlight")
	acq := interact.NewAcquisitionController(nil, s.FPS)
	acq.Anchors = anchors
	acq.DefaultAnchor = hold
	acq.Drop = cfg.DropTuning()
	acq.Metrics = s.Metrics
	acq.Log = logging.Component(log, "acquisition")

	s.Interactor = interact.NewInteractor(scanner, highlight, acq)
	s.Interactor.Log = logging.Component(log, "interactor")
	s.Interactor.LookAt.Log = s.Interactor.Log
	s.Player.AddComponent(s.Interactor)

	s.Combatant = combat.NewCombatant(acq, s.FPS, log)
	s.Player.AddComponent(s.Combatant)
}

// Tick advances the simulation unless paused.
func (s *Session) Tick(dt float32) {
	if s.Paused {
		return
	}
	s.World.Update(dt)
}

// Run ticks at a fixed step until d of simulation time has passed.
func (s *Session) Run(d time.Duration, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += step {
		s.Tick(float32(step.Seconds()))
	}
}

func (s *Session) Look(dx, dy float32) {
	s.FPS.Look(dx, dy)
}

func (s *Session) Move(forward, strafe, dt float32) {
	s.FPS.Move(forward, strafe, dt)
}

// Interact rescans against the current pose before running the interact
// command, so input applied since the last tick is honored.
func (s *Session) Interact() bool {
	s.Interactor.Refresh()
	return s.Interactor.Interact()
}

func (s *Session) Drop() bool {
	return s.Interactor.Drop()
}

func (s *Session) Attack() combat.AttackResult {
	return s.Combatant.Attack()
}

// AimAt turns the view toward a world point.
func (s *Session) AimAt(p rl.Vector3) {
	eye := s.FPS.GetEyePosition()
	d := rl.Vector3Subtract(p, eye)
	horizontal := math.Hypot(float64(d.X), float64(d.Z))
	s.FPS.Yaw = float32(math.Atan2(float64(d.Z), float64(d.X)) * 180 / math.Pi)
	s.FPS.Pitch = float32(math.Atan2(float64(d.Y), horizontal) * 180 / math.Pi)
	s.FPS.Update(0)
	s.Interactor.Refresh()
}

// AimAtObject aims at a named object's world position.
func (s *Session) AimAtObject(name string) bool {
	obj := s.World.Find(name)
	if obj == nil {
		s.Log.Warn().Str("object", name).Msg("aim target not found")
		return false
	}
	s.AimAt(obj.WorldPosition())
	return true
}

// Teleport moves the player's feet to p.
func (s *Session) Teleport(p rl.Vector3) {
	s.Player.Transform.Position = p
	s.FPS.Update(0)
}

func (s *Session) Held() *engine.GameObject {
	return s.Interactor.Acquisition.Held()
}

func (s *Session) Target() interact.Target {
	return s.Interactor.Scanner.Current()
}

func (s *Session) Camera3D() rl.Camera3D {
	return s.Camera.Camera3D(s.FPS)
}

// SetMeleeDamage updates every melee hitbox in the world.
func (s *Session) SetMeleeDamage(v float32) {
	s.World.Tuning.MeleeDamage = v
	for _, g := range s.World.Scene.GameObjects {
		if h := engine.GetComponent[*combat.MeleeHitbox](g); h != nil && h.Resolver != nil {
			h.Resolver.Damage = v
		}
	}
}

// SetStaffCooldown updates every skill caster in the world.
func (s *Session) SetStaffCooldown(d time.Duration) {
	s.World.Tuning.StaffCooldown = d
	for _, g := range s.World.Scene.GameObjects {
		if c := engine.GetComponent[*combat.SkillCaster](g); c != nil {
			c.Cooldown.Duration = d
		}
	}
}

// HealthOf returns the fill of the first health bar under the named object.
func (s *Session) HealthOf(name string) (float32, bool) {
	obj := s.World.Find(name)
	if obj == nil {
		return 0, false
	}
	bar := engine.GetComponentInChildren[*components.HealthBar](obj, true)
	if bar == nil {
		return 0, false
	}
	return bar.Fill(), true
}
